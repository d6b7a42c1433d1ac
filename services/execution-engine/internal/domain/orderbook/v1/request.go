package orderbookv1

import (
	stderrors "errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/i-onlabs/sigmax/pkg/errors"
)

var (
	validate     *validator.Validate
	onceValidate sync.Once
)

func getValidator() *validator.Validate {
	onceValidate.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// PlaceOrderRequest represents a request to place an order.
type PlaceOrderRequest struct {
	Symbol      string      `json:"symbol" validate:"required"`
	Side        Side        `json:"side" validate:"required,oneof=buy sell"`
	Type        OrderType   `json:"type" validate:"required,oneof=limit market"`
	Price       float64     `json:"price,omitempty" validate:"required_if=Type limit,gte=0"`
	Quantity    float64     `json:"quantity" validate:"gt=0"`
	TimeInForce TimeInForce `json:"timeInForce,omitempty" validate:"omitempty,oneof=GTC IOC FOK"`
	Owner       string      `json:"owner,omitempty" validate:"max=64"`
}

// Validate checks the request and reports every failing field at once as
// a BaseError whose details all carry the invalid_order code.
func (r *PlaceOrderRequest) Validate() error {
	if r == nil {
		return errors.NewErrorDetails("order request is nil", string(errors.InvalidOrderError), "")
	}

	base := errors.NewBaseError()
	if err := getValidator().Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return errors.NewErrorDetails(err.Error(), string(errors.InvalidOrderError), "")
		}
		for _, fe := range verrs {
			base.AddErrorDetails(errors.NewErrorDetailsWithObject(
				fmt.Sprintf("%s failed on tag '%s'", fe.Field(), fe.Tag()),
				string(errors.InvalidOrderError),
				fe.Field(),
				fe.Value(),
			))
		}
	}

	if math.IsInf(r.Price, 0) {
		base.AddErrorDetails(errors.NewErrorDetails("price must be finite", string(errors.InvalidOrderError), "price"))
	}
	if math.IsInf(r.Quantity, 0) {
		base.AddErrorDetails(errors.NewErrorDetails("quantity must be finite", string(errors.InvalidOrderError), "quantity"))
	}

	if base.HasDetails() {
		return base
	}
	return nil
}
