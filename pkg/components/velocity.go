package components

// VelocityComponent 实体速度（像素/秒）
type VelocityComponent struct {
	VX, VY float64
}

// IsMoving 是否有非零速度
func (v *VelocityComponent) IsMoving() bool {
	return v.VX != 0 || v.VY != 0
}
