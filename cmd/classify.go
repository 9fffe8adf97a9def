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
	"fmt"
	"os"

	"github.com/packagewjx/energy-anomaly/internal/anomaly"
	"github.com/packagewjx/energy-anomaly/internal/classify"
	"github.com/packagewjx/energy-anomaly/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags for classify
const (
	ModelFileFlag       = "modelFile"
	ModelFormatFlag     = "modelFormat"
	RemoveColumnFlag    = "removeColumn"
	OutputPrecisionFlag = "outputPrecision"
)

const (
	DefaultOutputPrecision = 2
)

var classifyModelFile string
var classifyModelFormat string
var removeColumn []int
var outputPrecision int

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify inputFile outputFile",
	Short: "读取读数文件离线分类，并输出结果到新文件中",
	Long: "输入文件每行移除removeColumn指定的列后应剩下input_energy与output_energy两列。\n" +
		"输出文件每行为input_energy,output_energy,percentage_difference,class。输入能量为0的行将被跳过。\n",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("inputFile与outputFile不能一致")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(logging.DefaultLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		model, err := classify.Load(classify.ModelFormat(classifyModelFormat), classifyModelFile)
		if err != nil {
			return err
		}
		assessor := anomaly.NewAssessor(model)

		logger.Info("读取数据中", zap.String("file", args[0]))
		inFile, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "打开输入文件错误")
		}
		defer inFile.Close()
		data, err := classify.NewDataLoader(classify.CSV).Load(inFile, removeColumn)
		if err != nil {
			return errors.Wrap(err, "读取错误")
		}
		logger.Info("读取数据完成", zap.Int("rows", len(data)))

		result := make([][]float64, 0, len(data))
		for i, datum := range data {
			if len(datum) != 2 {
				return fmt.Errorf("第%d行应为2列，现在为%d列", i+1, len(datum))
			}

			r, err := assessor.Assess(anomaly.Reading{InputEnergy: datum[0], OutputEnergy: datum[1]})
			if err == anomaly.ErrZeroInputEnergy || err == anomaly.ErrNonFiniteFeature {
				logger.Warn("跳过无法分类的行", zap.Int("row", i+1), zap.Error(err))
				continue
			} else if err != nil {
				return errors.Wrap(err, fmt.Sprintf("第%d行分类出错", i+1))
			}
			result = append(result, []float64{r.InputEnergy, r.OutputEnergy, r.PercentageDifference, float64(r.Class)})
		}

		fout, err := os.Create(args[1])
		if err != nil {
			return errors.Wrap(err, "创建输出文件错误")
		}
		defer fout.Close()
		err = classify.OutputResult(result, fout, outputPrecision)
		if err != nil {
			return errors.Wrap(err, "输出文件错误")
		}

		logger.Info("分类完成", zap.Int("rows", len(result)), zap.String("file", args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyModelFile, ModelFileFlag, "m", classify.DefaultModelFile,
		"模型文件路径")
	classifyCmd.Flags().StringVarP(&classifyModelFormat, ModelFormatFlag, "f", string(classify.Linear),
		"模型文件格式，可选值：linear、centroid")
	classifyCmd.Flags().IntSliceVarP(&removeColumn, RemoveColumnFlag, "r", []int{},
		"需要移除的列号，从0开始计算。使用此字段忽略掉不是数字的列")
	classifyCmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")
}
