package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/packagewjx/energy-anomaly/internal/anomaly"
	"github.com/packagewjx/energy-anomaly/internal/ports"
	"github.com/packagewjx/energy-anomaly/pkg/core"
	"github.com/packagewjx/energy-anomaly/pkg/server"
	"go.uber.org/zap"
)

const (
	messageInvalidBody       = "Request body must be a JSON object with numeric input_energy and output_energy."
	messageMissingInput      = "input_energy is required."
	messageMissingOutput     = "output_energy is required."
	messageNonFiniteFeature  = "Percentage difference is out of range."
	messageInternalServerErr = "Internal server error."
)

func (s *serverImpl) handlePredict(writer http.ResponseWriter, request *http.Request) {
	body := &core.PredictRequest{}
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxRequestBodySize))
	if err := decoder.Decode(body); err != nil {
		writeError(writer, http.StatusBadRequest, messageInvalidBody)
		return
	}
	// 请求体只能包含一个JSON对象
	if _, err := decoder.Token(); err != io.EOF {
		writeError(writer, http.StatusBadRequest, messageInvalidBody)
		return
	}

	// 输入能量为0时无论输出能量是什么都返回同一个错误
	if body.InputEnergy == nil {
		writeError(writer, http.StatusBadRequest, messageMissingInput)
		return
	} else if *body.InputEnergy == 0 {
		writeError(writer, http.StatusBadRequest, core.MessageZeroInputEnergy)
		return
	} else if body.OutputEnergy == nil {
		writeError(writer, http.StatusBadRequest, messageMissingOutput)
		return
	}

	result, err := s.assessor.Assess(anomaly.Reading{
		InputEnergy:  *body.InputEnergy,
		OutputEnergy: *body.OutputEnergy,
	})
	switch {
	case err == anomaly.ErrZeroInputEnergy:
		writeError(writer, http.StatusBadRequest, core.MessageZeroInputEnergy)
		return
	case err == anomaly.ErrNonFiniteFeature:
		writeError(writer, http.StatusBadRequest, messageNonFiniteFeature)
		return
	case err != nil:
		s.logger.Error("分类失败", zap.Error(err), zap.String("request_id", requestIdFrom(request.Context())))
		writeError(writer, http.StatusInternalServerError, messageInternalServerErr)
		return
	}

	marshal, err := json.Marshal(result.Response())
	if err != nil {
		s.logger.Error("序列化分类结果失败", zap.Error(err), zap.String("request_id", requestIdFrom(request.Context())))
		writeError(writer, http.StatusInternalServerError, messageInternalServerErr)
		return
	}

	s.metrics.predictions.WithLabelValues(string(result.Status)).Inc()
	writeBody(writer, http.StatusOK, marshal)
}

func (s *serverImpl) handlePorts(writer http.ResponseWriter, request *http.Request) {
	reports, err := s.dao.QueryAllPortReports(request.Context())
	if err != nil {
		s.logger.Error("查询充电桩数据失败", zap.Error(err), zap.String("request_id", requestIdFrom(request.Context())))
		writeError(writer, http.StatusInternalServerError, messageInternalServerErr)
		return
	}

	writeJSON(writer, http.StatusOK, &server.PortsResponse{
		Data: ports.Summarize(reports, s.now()),
	})
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, &core.ErrorResponse{Error: message})
}

func writeJSON(writer http.ResponseWriter, status int, value interface{}) {
	marshal, err := json.Marshal(value)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBody(writer, status, marshal)
}

func writeBody(writer http.ResponseWriter, status int, marshal []byte) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write(marshal)
}
