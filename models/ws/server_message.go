package wsmodels

type ServerMessage struct {
	ToUserID string      `json:"-"`
	Time     string      `json:"time"`
	Code     string      `json:"code"`
	Data     interface{} `json:"data,omitempty"`
}

const CodeValidationSynced = "validation_synced"
