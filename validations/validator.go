package validations

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"myplan-backend/models"
)

var paymentMethods = map[string]bool{
	"Card":         true,
	"ApplePay":     true,
	"STCPay":       true,
	"BankTransfer": true,
	"Cash":         true,
}

// Register installs the custom binding rules on gin's validator engine. Call
// once at startup before the router handles traffic.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool {
		return models.ValidBookingStatus(fl.Field().String())
	})

	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return paymentMethods[fl.Field().String()]
	})
}
