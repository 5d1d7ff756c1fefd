package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FlexNumber accepts a JSON number or a numeric string. Form-driven clients send both.
type FlexNumber float64

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = FlexNumber(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = FlexNumber(f)
	return nil
}

// Int truncates toward zero, the way parseInt reads "12.9" as 12.
func (n FlexNumber) Int() int {
	return int(math.Trunc(float64(n)))
}

// Float returns the raw value
func (n FlexNumber) Float() float64 {
	return float64(n)
}

// TokenRequest is the body of POST /api/settoken
type TokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ClassRequest is the body of POST /new-class and PUT /updateAll/:id
type ClassRequest struct {
	Name            string     `json:"name"`
	Image           string     `json:"image"`
	AvailableSeats  FlexNumber `json:"availableSeats" swaggertype:"number"`
	Price           FlexNumber `json:"price" swaggertype:"number"`
	VideoLink       string     `json:"videoLink"`
	Description     string     `json:"description"`
	InstructorName  string     `json:"instructorName"`
	InstructorEmail string     `json:"instructorEmail"`
	Status          string     `json:"status"`
	Submitted       string     `json:"submitted"`
	TotalEnrolled   FlexNumber `json:"totalEnrolled" swaggertype:"number"`
	Reason          string     `json:"reason"`
}

// ClassStatusRequest is the body of PATCH /classesupdated/:id
type ClassStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// CartRequest is the body of POST /addtocart
type CartRequest struct {
	ClassID   string     `json:"classID"`
	UserEmail string     `json:"userEmail"`
	Date      *time.Time `json:"date"`
}

// PaymentRequest is the body of POST /payment and POST /paymentInfo
type PaymentRequest struct {
	UserName      string     `json:"userName"`
	UserEmail     string     `json:"userEmail"`
	ClassID       []string   `json:"classID"`
	TransactionID string     `json:"transactionID"`
	Price         FlexNumber `json:"price" swaggertype:"number"`
	Quantity      FlexNumber `json:"quantity" swaggertype:"number"`
	PaymentStatus string     `json:"paymentStatus"`
	Date          *time.Time `json:"date"`
}

// PaymentIntentRequest is the body of POST /create-payment-intent
type PaymentIntentRequest struct {
	Price FlexNumber `json:"price" swaggertype:"number"`
}

// InstructorApplicationRequest is the body of POST /asinstructor
type InstructorApplicationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Experience string `json:"experience"`
	PhotoURL   string `json:"photoUrl"`
}

// UserRequest is the body of POST /newUser
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	About    string `json:"about"`
	PhotoURL string `json:"photoUrl"`
	Skills   string `json:"skills"`
}

// UserUpdateRequest is the body of PUT /updateusers/:id. The role arrives as "option".
type UserUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Option   string `json:"option"`
	Address  string `json:"address"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	About    string `json:"about"`
	PhotoURL string `json:"photoUrl"`
	Skills   string `json:"skills"`
}
