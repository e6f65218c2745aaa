package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
		UploadDir             string // 上传文件的存放根目录
		PageSize              int    // 列表接口默认分页大小
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效，但不影响使用
	}
	Mail struct {
		SMTPHost string // SMTP 服务器地址
		SMTPPort int    // SMTP 服务器端口
		Username string // SMTP 用户名
		Password string // SMTP 密码
		From     string // 发件人地址
	}
}
