package ports

import (
	"time"

	"github.com/packagewjx/energy-anomaly/pkg/server"
)

const StatusFault = "fault"

const day = 24 * time.Hour

type VehicleCharge struct {
	VehicleId         string
	SessionId         string
	StartTime         time.Time
	EndTime           time.Time
	TimeTakenMinutes  float64
	ChargedPercent    float64
	EnergyConsumedKWh float64
	ElectricityCost   float64
	UserRating        *float64
	Review            string
}

type PortReport struct {
	PortId                 string
	StationId              string
	Status                 string // idle, charging, fault, offline
	LastPing               time.Time
	CostPerKWh             float64
	AvgTimeToChargeMinutes float64
	ReportedAt             time.Time
	VehicleCharges         []*VehicleCharge
}

type windows struct {
	lastDay, last7Days, last30Days time.Time
}

func windowsAt(now time.Time) windows {
	return windows{
		lastDay:    now.Add(-day),
		last7Days:  now.Add(-7 * day),
		last30Days: now.Add(-30 * day),
	}
}

// Summarize 生成各充电桩的汇总。故障数统计的是所有充电桩，每个汇总携带相同的值。
func Summarize(reports []*PortReport, now time.Time) []*server.PortSummary {
	w := windowsAt(now)

	lastDayFault, last7Fault, last30Fault := 0, 0, 0
	for _, report := range reports {
		if report.Status != StatusFault {
			continue
		}
		if !report.ReportedAt.Before(w.lastDay) {
			lastDayFault++
		}
		if !report.ReportedAt.Before(w.last7Days) {
			last7Fault++
		}
		if !report.ReportedAt.Before(w.last30Days) {
			last30Fault++
		}
	}

	result := make([]*server.PortSummary, len(reports))
	for i, report := range reports {
		summary := &server.PortSummary{
			PortId:                 report.PortId,
			StationId:              report.StationId,
			Status:                 report.Status,
			LastPing:               report.LastPing,
			CostPerKWh:             report.CostPerKWh,
			AvgTimeToChargeMinutes: report.AvgTimeToChargeMinutes,
			ReportedAt:             report.ReportedAt,
			LastDayFaultValue:      lastDayFault,
			Last7FaultValue:        last7Fault,
			Last30FaultValue:       last30Fault,
		}

		for _, charge := range report.VehicleCharges {
			summary.TotalElectricityConsume += charge.EnergyConsumedKWh
			if !charge.EndTime.Before(w.lastDay) {
				summary.UserTraffic.LastDay++
			}
			if !charge.EndTime.Before(w.last7Days) {
				summary.UserTraffic.Last7Days++
			}
			if !charge.EndTime.Before(w.last30Days) {
				summary.UserTraffic.Last30Days++
			}
		}

		result[i] = summary
	}

	return result
}
