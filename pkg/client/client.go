package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/packagewjx/energy-anomaly/pkg/core"
	"github.com/packagewjx/energy-anomaly/pkg/server"
	"github.com/pkg/errors"
)

const DefaultApiHostBaseUrl = "http://energy-anomaly.energy-anomaly:5000"

func NewApiClient(baseUrl string) server.API {
	if baseUrl == "" {
		baseUrl = DefaultApiHostBaseUrl
	}
	return &apiClient{
		baseUrl:    baseUrl,
		httpClient: http.DefaultClient,
	}
}

var _ server.API = &apiClient{}

type apiClient struct {
	baseUrl    string
	httpClient *http.Client
}

func (a *apiClient) Predict(ctx context.Context, inputEnergy, outputEnergy float64) (*core.PredictResponse, error) {
	payload, err := json.Marshal(&core.PredictRequest{
		InputEnergy:  &inputEnergy,
		OutputEnergy: &outputEnergy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "序列化请求出错")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseUrl+"/anomaly/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "创建请求出错")
	}
	request.Header.Set("Content-Type", "application/json")

	dest := &core.PredictResponse{}
	if err := a.do(request, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) Ports(ctx context.Context) (*server.PortsResponse, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseUrl+"/ports", nil)
	if err != nil {
		return nil, errors.Wrap(err, "创建请求出错")
	}

	dest := &server.PortsResponse{}
	if err := a.do(request, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

func (a *apiClient) do(request *http.Request, dest interface{}) error {
	response, err := a.httpClient.Do(request)
	if err != nil {
		return errors.Wrap(err, "请求时出现异常")
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "读取时出现异常")
	}

	if response.StatusCode != http.StatusOK {
		apiErr := &server.APIError{StatusCode: response.StatusCode, Message: string(bytes.TrimSpace(body))}
		errResponse := &core.ErrorResponse{}
		if json.Unmarshal(body, errResponse) == nil && errResponse.Error != "" {
			apiErr.Message = errResponse.Error
		}
		return apiErr
	}

	err = json.Unmarshal(body, dest)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("解析json异常，json为\n%s", string(body)))
	}

	return nil
}
