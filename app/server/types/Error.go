package types

type ErrorMessage struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // 字段级错误，校验失败时填充
}
