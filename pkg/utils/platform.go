//go:build !mobile

package utils

import "os"

// IsMobile 是否运行在移动设备上
// 桌面端返回 false；设置 NUTRIQUEST_MOBILE_EMULATE=1 可在本地模拟移动端（显示触控提示）
func IsMobile() bool {
	return os.Getenv("NUTRIQUEST_MOBILE_EMULATE") == "1"
}
