package server

import (
	"time"

	"github.com/packagewjx/energy-anomaly/internal/ports"
	"gorm.io/gorm"
)

type PortReportDO struct {
	gorm.Model
	PortId                 string `gorm:"type:VARCHAR(128);not null;index"`
	StationId              string `gorm:"type:VARCHAR(128);not null;index"`
	Status                 string `gorm:"type:VARCHAR(16);not null"`
	LastPing               time.Time
	CostPerKWh             float64 `gorm:"column:cost_per_kwh;not null"`
	AvgTimeToChargeMinutes float64
	ReportedAt             time.Time          `gorm:"index"`
	VehicleCharges         []*VehicleChargeDO `gorm:"foreignKey:PortReportId"`
}

type VehicleChargeDO struct {
	gorm.Model
	PortReportId      uint   `gorm:"index;not null"`
	VehicleId         string `gorm:"type:VARCHAR(128)"`
	SessionId         string `gorm:"type:VARCHAR(128);not null"`
	StartTime         time.Time
	EndTime           time.Time `gorm:"index"`
	TimeTakenMinutes  float64
	ChargedPercent    float64
	EnergyConsumedKWh float64 `gorm:"column:energy_consumed_kwh"`
	ElectricityCost   float64
	UserRating        *float64
	Review            string `gorm:"type:TEXT"`
}

func (do *PortReportDO) toPortReport() *ports.PortReport {
	report := &ports.PortReport{
		PortId:                 do.PortId,
		StationId:              do.StationId,
		Status:                 do.Status,
		LastPing:               do.LastPing,
		CostPerKWh:             do.CostPerKWh,
		AvgTimeToChargeMinutes: do.AvgTimeToChargeMinutes,
		ReportedAt:             do.ReportedAt,
		VehicleCharges:         make([]*ports.VehicleCharge, len(do.VehicleCharges)),
	}
	for i, charge := range do.VehicleCharges {
		report.VehicleCharges[i] = &ports.VehicleCharge{
			VehicleId:         charge.VehicleId,
			SessionId:         charge.SessionId,
			StartTime:         charge.StartTime,
			EndTime:           charge.EndTime,
			TimeTakenMinutes:  charge.TimeTakenMinutes,
			ChargedPercent:    charge.ChargedPercent,
			EnergyConsumedKWh: charge.EnergyConsumedKWh,
			ElectricityCost:   charge.ElectricityCost,
			UserRating:        charge.UserRating,
			Review:            charge.Review,
		}
	}
	return report
}
