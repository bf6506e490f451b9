//go:build !android

package utils

// EnsureStorageDir 在打开 gdata 之前准备存档目录
// 非 Android 平台由 gdata 自行创建目录，这里什么都不做
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 返回平台特定的存档根目录，非 Android 平台为空
func GetStoragePath() string {
	return ""
}
