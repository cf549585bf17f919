package apimodels

type Response struct {
	Status  string      `json:"status"`            // fail/success
	Kind    string      `json:"kind,omitempty"`    // error kind tag
	Message string      `json:"message,omitempty"` // error message
	Data    interface{} `json:"data,omitempty"`    // response payload
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewKindError(kind, message string) Response {
	return Response{
		Status:  "fail",
		Kind:    kind,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}
