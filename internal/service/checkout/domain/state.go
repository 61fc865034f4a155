// internal/service/checkout/domain/state.go
package domain

// State 定义了一次结账流程的生命周期状态
type State string

const (
	StateEditing    State = "EDITING"    // 用户正在填写联系人、地址、支付信息
	StateValidating State = "VALIDATING" // 提交后逐字段校验中
	StateSubmitting State = "SUBMITTING" // 正在提交订单（模拟调用，不可中途取消）
	StateComplete   State = "COMPLETE"   // 订单创建成功，购物车已清空
)
