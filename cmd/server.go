/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/packagewjx/energy-anomaly/internal/classify"
	"github.com/packagewjx/energy-anomaly/internal/logging"
	"github.com/packagewjx/energy-anomaly/internal/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	FlagPort            = "port"
	FlagModelFile       = "model-file"
	FlagModelFormat     = "model-format"
	FlagCorsOrigin      = "cors-origin"
	FlagShutdownTimeout = "shutdown-timeout"
	FlagLogLevel        = "log-level"
	FlagMysqlHost       = "mysql-host"
	FlagMysqlUser       = "mysql-user"
	FlagMysqlPassword   = "mysql-password"
	FlagMysqlDatabase   = "mysql-database"
	FlagMysqlMigrate    = "mysql-auto-migrate"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "异常分类HTTP服务器",
	Long: "启动时读取一次模型文件（通过model-file指定），读取失败则直接退出。之后通过POST /anomaly/predict\n" +
		"对读数分类。指定mysql-host后额外提供GET /ports充电桩汇总接口。\n",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(viper.GetString(FlagLogLevel))
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		modelFile := viper.GetString(FlagModelFile)
		modelFormat := viper.GetString(FlagModelFormat)
		logger.Info("正在读取模型", zap.String("file", modelFile), zap.String("format", modelFormat))
		model, err := classify.Load(classify.ModelFormat(modelFormat), modelFile)
		if err != nil {
			logger.Error("读取模型失败", zap.Error(err))
			return errors.Wrap(err, "读取模型失败")
		}

		s, err := server.NewServer(&server.ServerConfig{
			Port:            uint16(viper.GetUint(FlagPort)),
			ModelFile:       modelFile,
			ModelFormat:     modelFormat,
			CorsOrigins:     viper.GetStringSlice(FlagCorsOrigin),
			ShutdownTimeout: viper.GetDuration(FlagShutdownTimeout),
			Mysql: server.MysqlConfig{
				Host:        viper.GetString(FlagMysqlHost),
				User:        viper.GetString(FlagMysqlUser),
				Password:    viper.GetString(FlagMysqlPassword),
				Database:    viper.GetString(FlagMysqlDatabase),
				AutoMigrate: viper.GetBool(FlagMysqlMigrate),
			},
		}, model, logger)
		if err != nil {
			return err
		}

		return s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().Uint16P(FlagPort, "p", server.DefaultPort,
		"服务端口号")
	serverCmd.Flags().StringP(FlagModelFile, "m", classify.DefaultModelFile,
		"模型文件路径")
	serverCmd.Flags().StringP(FlagModelFormat, "f", string(classify.Linear),
		"模型文件格式，可选值：linear、centroid")
	serverCmd.Flags().StringSlice(FlagCorsOrigin, []string{"*"},
		"允许跨域访问的来源")
	serverCmd.Flags().Duration(FlagShutdownTimeout, server.DefaultShutdownTimeout,
		"收到退出信号后等待请求结束的最长时间")
	serverCmd.Flags().String(FlagLogLevel, logging.DefaultLevel,
		"日志级别，可选值：debug、info、warn、error")
	serverCmd.Flags().String(FlagMysqlHost, "",
		"Mysql服务器主机端口，格式为：host:port。若为空，则读取环境变量MYSQL_SERVICE_HOST与MYSQL_SERVICE_PORT取得，仍为空则不提供充电桩接口")
	serverCmd.Flags().String(FlagMysqlUser, server.DefaultMysqlUser,
		"Mysql用户名")
	serverCmd.Flags().String(FlagMysqlPassword, "",
		"Mysql密码")
	serverCmd.Flags().String(FlagMysqlDatabase, server.DefaultMysqlDatabase,
		"Mysql数据库名")
	serverCmd.Flags().Bool(FlagMysqlMigrate, false,
		"启动时自动创建充电桩数据表。数据表通常由上报服务维护，默认不创建")

	_ = viper.BindPFlags(serverCmd.Flags())
}
