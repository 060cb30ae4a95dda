package http

import (
	"context"
	"time"
)

type IClient interface {
	DoHTTPRequest(ctx context.Context, requestParam *RequestParam) error
}

type RequestParam struct {
	RequestURI string
	Method     string
	Header     map[string]string

	// Body 支持 io.Reader、[]byte，其余类型按 JSON 序列化
	Body interface{}
	// Response 为 *bytes.Buffer（或其他 io.Writer）时接收原始字节，
	// 其余指针类型按 JSON 反序列化
	Response interface{}

	// Timeout 单次请求超时，0 使用客户端默认值
	Timeout time.Duration
}
