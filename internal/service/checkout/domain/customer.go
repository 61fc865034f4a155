// internal/service/checkout/domain/customer.go
package domain

import (
	"regexp"
	"strings"
)

// PaymentMethod 是结账时选择的支付方式。
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentPaypal PaymentMethod = "paypal"
)

// CustomerInfo 是结账表单的全部字段。
type CustomerInfo struct {
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	ZipCode       string        `json:"zipCode"`
	Country       string        `json:"country"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CardNumber    string        `json:"cardNumber,omitempty"`
	CardExpiry    string        `json:"cardExpiry,omitempty"`
	CardCVV       string        `json:"cardCvv,omitempty"`
}

var (
	emailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

// Validate 按表单顺序逐字段校验，返回字段名到错误信息的映射，
// 以及第一个出错的字段名（用于聚焦）。映射为空表示校验通过。
func (ci CustomerInfo) Validate() (map[string]string, string) {
	fieldErrors := make(map[string]string)
	first := ""
	record := func(field, msg string) {
		if _, exists := fieldErrors[field]; exists {
			return
		}
		fieldErrors[field] = msg
		if first == "" {
			first = field
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"firstName", ci.FirstName},
		{"lastName", ci.LastName},
		{"email", ci.Email},
		{"phone", ci.Phone},
		{"address", ci.Address},
		{"city", ci.City},
		{"state", ci.State},
		{"zipCode", ci.ZipCode},
		{"country", ci.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			record(f.name, "This field is required")
		}
	}

	if ci.Email != "" && !emailPattern.MatchString(ci.Email) {
		record("email", "Please enter a valid email address")
	}
	if ci.Phone != "" && len(nonDigits.ReplaceAllString(ci.Phone, "")) != 10 {
		record("phone", "Please enter a valid 10-digit phone number")
	}

	// 只有信用卡支付才校验卡面信息
	if ci.PaymentMethod == PaymentCredit {
		if strings.TrimSpace(ci.CardNumber) == "" {
			record("cardNumber", "Card number is required")
		} else if len(nonDigits.ReplaceAllString(ci.CardNumber, "")) != 16 {
			record("cardNumber", "Please enter a valid 16-digit card number")
		}

		if strings.TrimSpace(ci.CardExpiry) == "" {
			record("cardExpiry", "Expiry date is required")
		} else if !expiryPattern.MatchString(ci.CardExpiry) {
			record("cardExpiry", "Please use MM/YY format")
		}

		if strings.TrimSpace(ci.CardCVV) == "" {
			record("cardCvv", "CVV is required")
		} else if !cvvPattern.MatchString(ci.CardCVV) {
			record("cardCvv", "Please enter a valid CVV")
		}
	}

	return fieldErrors, first
}

// Sanitized 返回去掉卡面信息的副本，订单留存时不落敏感数据。
func (ci CustomerInfo) Sanitized() CustomerInfo {
	ci.CardNumber = ""
	ci.CardExpiry = ""
	ci.CardCVV = ""
	return ci
}
