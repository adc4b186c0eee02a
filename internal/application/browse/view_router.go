package browse

// ViewState 当前展示的视图
type ViewState string

const (
	ViewListing   ViewState = "listing"
	ViewSearching ViewState = "searching"
	ViewDetail    ViewState = "detail"
)

// ViewRouter 视图状态机
//
//	Listing   -> ViewingDetail  选择列表条目
//	Searching -> ViewingDetail  选择搜索结果
//	ViewingDetail -> Listing    返回或点击首页
//	Listing  <-> Searching      关键字变为非空/空
//
// 查看详情时关键字变化只记录,不离开详情页。
// 不是并发安全的,由 Session 加锁使用。
type ViewRouter struct {
	state       ViewState
	selected    int
	queryActive bool
}

func NewViewRouter() *ViewRouter {
	return &ViewRouter{state: ViewListing}
}

func (r *ViewRouter) State() ViewState {
	return r.state
}

// Selected 当前选中的电影,未选中时为0
func (r *ViewRouter) Selected() int {
	return r.selected
}

// QueryActive 关键字是否非空
func (r *ViewRouter) QueryActive() bool {
	return r.queryActive
}

// SelectItem 进入详情页,从任意状态均可进入
func (r *ViewRouter) SelectItem(id int) ViewState {
	r.selected = id
	r.state = ViewDetail
	return r.state
}

// Back 离开详情页回到列表
func (r *ViewRouter) Back() ViewState {
	r.selected = 0
	r.state = ViewListing
	return r.state
}

// Home 回到列表并清除搜索状态
func (r *ViewRouter) Home() ViewState {
	r.selected = 0
	r.queryActive = false
	r.state = ViewListing
	return r.state
}

// QueryChanged 关键字变化
func (r *ViewRouter) QueryChanged(nonEmpty bool) ViewState {
	r.queryActive = nonEmpty
	if r.state == ViewDetail {
		return r.state
	}
	if nonEmpty {
		r.state = ViewSearching
	} else {
		r.state = ViewListing
	}
	return r.state
}
