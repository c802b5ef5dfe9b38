package components

// InteractiveComponent 标记可被指针射线命中并受排斥力影响的点云
type InteractiveComponent struct{}
