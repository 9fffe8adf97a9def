package core

// 对外暴露的状态标签。"Suspecious"的拼写是已有调用方依赖的接口约定，不能修改。
type Status string

const (
	StatusNormal     = Status("normal")
	StatusSuspicious = Status("Suspecious")
	StatusAnomaly    = Status("Anomaly")
)

const MessageZeroInputEnergy = "Input energy cannot be zero."

// 字段使用指针以区分缺失与零值
type PredictRequest struct {
	InputEnergy  *float64 `json:"input_energy"`
	OutputEnergy *float64 `json:"output_energy"`
}

type PredictResponse struct {
	InputEnergy          float64 `json:"input_energy"`
	OutputEnergy         float64 `json:"output_energy"`
	PercentageDifference float64 `json:"percentage_difference"`
	Status               Status  `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
