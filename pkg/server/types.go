package server

import (
	"context"
	"fmt"
	"time"

	"github.com/packagewjx/energy-anomaly/pkg/core"
)

type UserTraffic struct {
	LastDay    int `json:"lastDay"`
	Last7Days  int `json:"last7Days"`
	Last30Days int `json:"last30Days"`
}

// 充电桩汇总信息，不包含充电记录本身
type PortSummary struct {
	PortId                  string      `json:"port_id"`
	StationId               string      `json:"station_id"`
	Status                  string      `json:"status"`
	LastPing                time.Time   `json:"last_ping"`
	CostPerKWh              float64     `json:"cost_per_kWh"`
	AvgTimeToChargeMinutes  float64     `json:"avg_time_to_charge_minutes"`
	ReportedAt              time.Time   `json:"reported_at"`
	TotalElectricityConsume float64     `json:"totalElectricityConsumption"`
	UserTraffic             UserTraffic `json:"userTraffic"`
	LastDayFaultValue       int         `json:"lastDayFaultValue"`
	Last7FaultValue         int         `json:"last7FaultValue"`
	Last30FaultValue        int         `json:"last30FaultValue"`
}

type PortsResponse struct {
	Data []*PortSummary `json:"data"`
}

// 服务端返回的非200响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("请求失败，状态码%d：%s", e.StatusCode, e.Message)
}

type API interface {
	Predict(ctx context.Context, inputEnergy, outputEnergy float64) (*core.PredictResponse, error)

	Ports(ctx context.Context) (*PortsResponse, error)
}
