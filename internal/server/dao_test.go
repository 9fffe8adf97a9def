package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMysqlConfigDsn(t *testing.T) {
	c := MysqlConfig{
		Host:     "127.0.0.1:3306",
		User:     "root",
		Password: "secret",
		Database: "energy",
	}
	assert.Equal(t, "root:secret@tcp(127.0.0.1:3306)/energy?charset=utf8mb4&parseTime=True&loc=Local", c.dsn())
}

func TestPortReportDOToPortReport(t *testing.T) {
	now := time.Now()
	rating := 4.5
	do := &PortReportDO{
		PortId:     "p-1",
		StationId:  "s-1",
		Status:     "idle",
		LastPing:   now,
		CostPerKWh: 0.25,
		ReportedAt: now,
		VehicleCharges: []*VehicleChargeDO{
			{
				SessionId:         "session-1",
				EndTime:           now,
				EnergyConsumedKWh: 12.5,
				UserRating:        &rating,
				Review:            "fast",
			},
		},
	}

	report := do.toPortReport()
	assert.Equal(t, "p-1", report.PortId)
	assert.Equal(t, "s-1", report.StationId)
	assert.Equal(t, "idle", report.Status)
	assert.Equal(t, 0.25, report.CostPerKWh)
	assert.Len(t, report.VehicleCharges, 1)
	assert.Equal(t, "session-1", report.VehicleCharges[0].SessionId)
	assert.Equal(t, 12.5, report.VehicleCharges[0].EnergyConsumedKWh)
	assert.Equal(t, &rating, report.VehicleCharges[0].UserRating)
}
