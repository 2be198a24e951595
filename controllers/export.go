package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"go-agrilab/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export 导出全部记录为 xlsx 表格，第一行为列名
func (rc *ResourceController) Export(ctx *gin.Context) {
	columns, rows, err := rc.Store.Select(ctx.Request.Context(), rc.stmts.List)
	if err != nil {
		rc.log(ctx).WithError(err).Error("export failed")
		utils.Fail(ctx, utils.Storage("数据库查询失败", err))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := rc.Resource.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		utils.Fail(ctx, utils.Storage("导出失败", err))
		return
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		utils.Fail(ctx, utils.Storage("导出失败", err))
		return
	}

	header := make([]interface{}, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := sw.SetRow("A1", header); err != nil {
		utils.Fail(ctx, utils.Storage("导出失败", err))
		return
	}
	for i, row := range rows {
		values := make([]interface{}, len(columns))
		for j, column := range columns {
			values[j] = cellValue(row[column])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			utils.Fail(ctx, utils.Storage("导出失败", err))
			return
		}
		if err := sw.SetRow(cell, values); err != nil {
			utils.Fail(ctx, utils.Storage("导出失败", err))
			return
		}
	}
	if err := sw.Flush(); err != nil {
		utils.Fail(ctx, utils.Storage("导出失败", err))
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		utils.Fail(ctx, utils.Storage("导出失败", err))
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+rc.Resource.Name+`.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// cellValue 数值列以数字写入单元格
func cellValue(v interface{}) interface{} {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}
