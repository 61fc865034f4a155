// internal/service/checkout/domain/checkout.go
package domain

import (
	"errors"
	"time"
)

// Checkout 是一次结账流程的聚合根。
// 状态只能沿 EDITING → VALIDATING → SUBMITTING → COMPLETE 推进，
// 校验或提交失败都回到 EDITING，表单数据不丢。
type Checkout struct {
	Customer    CustomerInfo
	State       State
	FieldErrors map[string]string
	FirstError  string // 第一个出错的字段名，消费端用来聚焦
	Order       *Order // COMPLETE 之后才有值
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCheckout 从用户填写的表单创建一次结账流程，初始状态为编辑中。
func NewCheckout(customer CustomerInfo) *Checkout {
	now := time.Now()
	return &Checkout{
		Customer:  customer,
		State:     StateEditing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeginValidation 进入校验阶段。
func (c *Checkout) BeginValidation() error {
	if c.State != StateEditing {
		return errors.New("checkout can only start validation from editing state")
	}
	c.State = StateValidating
	c.touch()
	return nil
}

// FailValidation 带着字段级错误回到编辑状态。
func (c *Checkout) FailValidation(fieldErrors map[string]string, firstError string) {
	c.State = StateEditing
	c.FieldErrors = fieldErrors
	c.FirstError = firstError
	c.touch()
}

// BeginSubmission 校验通过后进入提交阶段。
func (c *Checkout) BeginSubmission() error {
	if c.State != StateValidating {
		return errors.New("checkout can only be submitted after validation")
	}
	c.State = StateSubmitting
	c.FieldErrors = nil
	c.FirstError = ""
	c.touch()
	return nil
}

// FailSubmission 提交失败回到编辑状态，表单数据保持原样。
func (c *Checkout) FailSubmission() {
	c.State = StateEditing
	c.touch()
}

// Complete 提交成功，记录生成的订单。
func (c *Checkout) Complete(order *Order) error {
	if c.State != StateSubmitting {
		return errors.New("checkout can only complete from submitting state")
	}
	c.State = StateComplete
	c.Order = order
	c.touch()
	return nil
}

func (c *Checkout) touch() {
	c.UpdatedAt = time.Now()
}
