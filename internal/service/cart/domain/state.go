package domain

// State 是购物车的完整状态。
// Items 保持首次加入的顺序；其余字段全部是 Items 的派生值，
// 任何代码路径都不允许脱离 Items 单独修改它们。
type State struct {
	Items      []LineItem `json:"items"`
	ItemCount  int        `json:"itemCount"`
	Total      float64    `json:"total"`
	Shipping   float64    `json:"shipping"`
	Tax        float64    `json:"tax"`
	GrandTotal float64    `json:"grandTotal"`
}

// Empty 返回空购物车。
func Empty() State {
	return State{Items: []LineItem{}}
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// IndexOf 返回指定商品在 Items 中的下标，不存在时返回 -1。
func (s State) IndexOf(id string) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Clone 返回深拷贝，供只读快照使用，调用方改不到内部状态。
func (s State) Clone() State {
	out := s
	out.Items = make([]LineItem, len(s.Items))
	copy(out.Items, s.Items)
	return out
}
