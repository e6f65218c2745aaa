package apidocs

import _ "embed"

//go:embed openapi.json
var specJSON []byte

// Spec 返回手写维护的 OpenAPI 描述
func Spec() []byte {
	return specJSON
}
