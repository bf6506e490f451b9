package utils

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FollowFactor 返回跟随插值系数 rate*dt，限制在 [0, 1]
// 用于镜头等"每秒追上 rate 倍距离"的平滑跟随
func FollowFactor(rate, dt float64) float64 {
	return Clamp(rate*dt, 0, 1)
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
