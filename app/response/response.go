package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lore-ai/lore-ai/pkg/errors"
	"github.com/lore-ai/lore-ai/pkg/utils"
)

const (
	ResponseKey = "response_key"
)

// Response 响应结构体定义
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

// Meta 响应meta定义
type Meta struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// APIError api响应失败
func APIError(c *gin.Context, err error) {
	c.Abort()

	res := c.MustGet(ResponseKey).(*Response)
	var httpStatus int
	if cerrptr, ok := err.(*errors.CustomizedError); !ok {
		res.Meta.Code = http.StatusInternalServerError
		res.Meta.Message = err.Error()
		httpStatus = res.Meta.Code
	} else {
		res.Meta.Code = cerrptr.GetCode()
		res.Meta.Message = cerrptr.Message()
		httpStatus = cerrptr.GetCode()
	}

	c.JSON(httpStatus, res)
	printErrorLog(c, res, err)
}

func printErrorLog(c *gin.Context, res *Response, err error) {
	slog.Error("response error", slog.Any("fields", map[string]any{
		"request_uri": c.Request.URL.Path,
		"end_time":    time.Now().Unix(),
		"code":        res.Meta.Code,
		"error":       err.Error(),
	}))
}

func printSuccessLog(c *gin.Context, res *Response) {
	var logFields = map[string]any{
		"request_uri": c.Request.URL.Path,
		"end_time":    time.Now().Unix(),
	}

	if c.Request.Method == http.MethodPost {
		c.Request.ParseForm()
		logFields["params"] = c.Request.Form.Encode()
	} else {
		logFields["params"] = c.Request.URL.Query().Encode()
	}

	slog.Info("request success", slog.Any("fields", logFields))
}

// APISuccess api响应成功
func APISuccess(c *gin.Context, response interface{}) {
	c.Abort()
	res := c.MustGet(ResponseKey).(*Response)
	if response != nil {
		res.Data = response
	}
	c.JSON(http.StatusOK, res)
	printSuccessLog(c, res)
}

func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := &Response{
			Meta: Meta{
				RequestID: utils.GenRandomID(),
			},
		}
		c.Set(ResponseKey, resp)
	}
}
