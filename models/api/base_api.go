package apimodels

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

// Response - единый конверт ответа api
type Response struct {
	Status  string      `json:"status"`            // fail либо success
	Message string      `json:"message,omitempty"` // текст ошибки
	Data    interface{} `json:"data,omitempty"`    // полезная нагрузка
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: statusSuccess,
		Data:   data,
	}
}

func NewError(message string) Response {
	return Response{
		Status:  statusFail,
		Message: message,
	}
}
