package migrations

import "embed"

// FS 嵌入的存档表迁移脚本
//
//go:embed *.sql
var FS embed.FS
