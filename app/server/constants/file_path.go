package constants

// 上传文件
const (
	UploadPathPrefix     = "uploads/"   // 相对于配置的上传根目录
	UploadPathDateLayout = "2006/01/02" // 按日期分目录存放
)
