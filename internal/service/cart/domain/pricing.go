package domain

import "math"

const (
	// FreeShippingThreshold 超过（严格大于）该金额免运费
	FreeShippingThreshold = 50.00
	// ShippingFee 不满足免邮条件时的固定运费
	ShippingFee = 5.99
	// TaxRate 统一税率，不做区域逻辑
	TaxRate = 0.07
)

// CalculateTotals 根据条目整体重算全部派生字段。
// 这是一个纯函数：每次变更之后都必须整体调用，而不是增量修补，
// 以保证派生值永远不会和 Items 脱节。
func CalculateTotals(items []LineItem) State {
	if items == nil {
		items = []LineItem{}
	}
	state := State{Items: items}
	for _, item := range items {
		state.ItemCount += item.Quantity
		state.Total += item.Price * float64(item.Quantity)
	}

	// 满 50 免运费；空车同样不收运费
	if state.Total > FreeShippingThreshold || state.Total == 0 {
		state.Shipping = 0
	} else {
		state.Shipping = ShippingFee
	}

	state.Tax = state.Total * TaxRate
	state.GrandTotal = state.Total + state.Shipping + state.Tax
	return state
}

// Round2 只在展示层做四舍五入，内部金额一律不取整，避免误差累积。
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
