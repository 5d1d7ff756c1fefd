package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/controllers"
	"github.com/yigit/fitnesshub/internal/middleware"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
	"github.com/yigit/fitnesshub/internal/pkg/websocket"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Token      *controllers.TokenController
	Class      *controllers.ClassController
	Cart       *controllers.CartController
	Payment    *controllers.PaymentController
	User       *controllers.UserController
	Instructor *controllers.InstructorController
	Admin      *controllers.AdminController
	Health     *controllers.HealthController
	Feed       *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *Controllers, authMiddleware *middleware.AuthMiddleware) {
	jwt := authMiddleware.JWTAuth()
	instructor := authMiddleware.InstructorRequired()
	admin := authMiddleware.AdminRequired()

	router.GET("/", ctrl.Health.Root)
	router.GET("/health", ctrl.Health.Health)
	if ctrl.Feed != nil {
		router.GET("/ws/classes", ctrl.Feed.HandleConnection)
	}

	router.POST("/api/settoken", ctrl.Token.IssueToken)

	// --- Classes ---
	router.POST("/new-class", jwt, instructor, ctrl.Class.CreateClass)
	router.GET("/classes", ctrl.Class.GetAllClasses)
	router.GET("/classes/:email", jwt, instructor, ctrl.Class.GetClassesByInstructor)
	router.GET("/classesmanagement", ctrl.Class.GetClassesForManagement)
	// TODO: gate behind admin once the review screen sends a token
	router.PATCH("/classesupdated/:id", ctrl.Class.UpdateClassStatus)
	router.GET("/approvedclass", ctrl.Class.GetApprovedClasses)
	router.GET("/singleclass/:id", ctrl.Class.GetClassByID)
	router.PUT("/updateAll/:id", jwt, instructor, ctrl.Class.UpdateClass)
	router.GET("/popularclasses", ctrl.Class.GetPopularClasses)
	router.GET("/popularinstructors", ctrl.Class.GetPopularInstructors)

	// --- Cart ---
	router.POST("/addtocart", jwt, ctrl.Cart.AddToCart)
	router.GET("/cartcollections/:id", jwt, ctrl.Cart.GetCartItem)
	router.GET("/cart/:email", jwt, ctrl.Cart.GetCart)
	router.DELETE("/deletecart/:id", jwt, ctrl.Cart.RemoveFromCart)

	// --- Payments ---
	router.POST("/payment", ctrl.Payment.RecordPayment)
	router.GET("/payment/:key", ctrl.Payment.GetPayment)
	router.GET("/paymentlength/:email", ctrl.Payment.CountPayments)
	router.POST("/create-payment-intent", ctrl.Payment.CreatePaymentIntent)
	router.POST("/paymentInfo", jwt, ctrl.Payment.Checkout)

	// --- Instructors and enrollments ---
	router.GET("/instructors", ctrl.Instructor.GetInstructors)
	router.GET("/enrolledclasses/:email", jwt, ctrl.Instructor.GetEnrolledClasses)
	router.POST("/asinstructor", ctrl.Instructor.Apply)
	router.GET("/appliedinstructors/:email", ctrl.Instructor.GetApplications)

	// --- Users ---
	router.POST("/newUser", ctrl.User.CreateUser)
	router.GET("/user", ctrl.User.GetAllUsers)
	// one template serves both lookups; only the email form needs a token
	router.GET("/user/:key", authMiddleware.JWTAuthUnless(isIDKey), ctrl.User.GetUser)
	router.DELETE("/deleteuser/:id", jwt, admin, ctrl.User.DeleteUser)
	router.PUT("/updateusers/:id", jwt, admin, ctrl.User.UpdateUser)

	// --- Admin ---
	router.GET("/adminstatus", jwt, admin, ctrl.Admin.GetStats)
	router.GET("/paymentsexport", jwt, admin, ctrl.Admin.ExportPayments)
}

func isIDKey(c *gin.Context) bool {
	return helpers.IsObjectID(c.Param("key"))
}
