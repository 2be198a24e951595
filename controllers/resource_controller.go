package controllers

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"go-agrilab/events"
	"go-agrilab/logger"
	"go-agrilab/models"
	"go-agrilab/store"
	"go-agrilab/utils"
)

// ResourceController 通用的增删改查处理器，每个资源一个实例
type ResourceController struct {
	Store     *store.Store
	Resource  *models.Resource
	Validator *models.Validator
	Publisher events.Publisher

	stmts models.Statements
}

// NewResourceController 创建一个新的ResourceController实例，SQL语句在这里一次性生成
func NewResourceController(s *store.Store, r *models.Resource, v *models.Validator, p events.Publisher) *ResourceController {
	if p == nil {
		p = events.Nop{}
	}
	return &ResourceController{
		Store:     s,
		Resource:  r,
		Validator: v,
		Publisher: p,
		stmts:     r.Statements(s.Dialect()),
	}
}

func (rc *ResourceController) log(ctx *gin.Context) *logrus.Entry {
	return logger.FromContext(ctx.Request.Context()).WithField("resource", rc.Resource.Name)
}

// List 获取全部记录
func (rc *ResourceController) List(ctx *gin.Context) {
	_, rows, err := rc.Store.Select(ctx.Request.Context(), rc.stmts.List)
	if err != nil {
		rc.log(ctx).WithError(err).Error("list failed")
		utils.Fail(ctx, utils.Storage("数据库查询失败", err))
		return
	}
	utils.Success(ctx, rows)
}

// Create 创建新记录
func (rc *ResourceController) Create(ctx *gin.Context) {
	body, err := rc.bind(ctx, false)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	args, err := models.Args(rc.Resource.InsertFields(), body)
	if err != nil {
		utils.Fail(ctx, utils.Wrap(utils.KindValidation, "请求参数无效", err))
		return
	}

	var id interface{}
	if rc.Resource.KeyKind == models.AutoKey {
		res, err := rc.Store.Insert(ctx.Request.Context(), rc.stmts.Insert, rc.Resource.Key, args...)
		if err != nil {
			rc.log(ctx).WithError(err).Warn("create failed")
			utils.Fail(ctx, utils.Wrap(utils.KindValidation, "数据库操作失败", err))
			return
		}
		id = res.InsertID
	} else {
		if _, err := rc.Store.Exec(ctx.Request.Context(), rc.stmts.Insert, args...); err != nil {
			rc.log(ctx).WithError(err).Warn("create failed")
			utils.Fail(ctx, utils.Wrap(utils.KindValidation, "数据库操作失败", err))
			return
		}
		id = body[rc.Resource.Key]
	}

	rc.publish(ctx, events.Created, id, 1)
	utils.Created(ctx, gin.H{
		"id":      id,
		"message": "记录创建成功",
	})
}

// Update 整体更新指定记录，不存在时返回404，不会创建新记录
func (rc *ResourceController) Update(ctx *gin.Context) {
	id, ok := rc.Resource.ParseID(ctx.Param("id"))
	if !ok {
		utils.Fail(ctx, utils.Validation("Invalid ID format"))
		return
	}

	body, err := rc.bind(ctx, true)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	args, err := models.Args(rc.Resource.UpdateFields(), body)
	if err != nil {
		utils.Fail(ctx, utils.Wrap(utils.KindValidation, "请求参数无效", err))
		return
	}
	args = append(args, id)

	res, err := rc.Store.Exec(ctx.Request.Context(), rc.stmts.Update, args...)
	if err != nil {
		rc.log(ctx).WithError(err).Error("update failed")
		utils.Fail(ctx, utils.Storage("数据库操作失败", err))
		return
	}
	if res.AffectedRows == 0 {
		utils.Fail(ctx, utils.NotFound("未找到记录"))
		return
	}

	rc.publish(ctx, events.Updated, id, res.AffectedRows)
	utils.Success(ctx, gin.H{
		"message":      "记录更新成功",
		"affectedRows": res.AffectedRows,
	})
}

// Delete 删除指定记录
func (rc *ResourceController) Delete(ctx *gin.Context) {
	id, ok := rc.Resource.ParseID(ctx.Param("id"))
	if !ok {
		// 非数字ID不可能匹配任何自增主键
		utils.Fail(ctx, utils.NotFound("未找到记录"))
		return
	}

	res, err := rc.Store.Exec(ctx.Request.Context(), rc.stmts.Delete, id)
	if err != nil {
		rc.log(ctx).WithError(err).Error("delete failed")
		utils.Fail(ctx, utils.Storage("数据库操作失败", err))
		return
	}
	if res.AffectedRows == 0 {
		utils.Fail(ctx, utils.NotFound("未找到记录"))
		return
	}

	rc.publish(ctx, events.Deleted, id, res.AffectedRows)
	utils.Success(ctx, gin.H{
		"message":      "记录删除成功",
		"affectedRows": res.AffectedRows,
	})
}

// bind 解析并校验请求体。数值保持 json.Number，按原样写入数据库
func (rc *ResourceController) bind(ctx *gin.Context, update bool) (map[string]interface{}, error) {
	var body map[string]interface{}
	dec := json.NewDecoder(ctx.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, utils.Validation("请求体不能为空")
		}
		// 数值超出范围时文档本身是合法的JSON
		if strings.Contains(err.Error(), strconv.ErrRange.Error()) {
			return nil, utils.Wrap(utils.KindValidation, "请求参数无效", err)
		}
		return nil, utils.Wrap(utils.KindValidation, "请求体不是有效的JSON", err)
	}

	if err := rc.Validator.Validate(rc.Resource.Name, body, update); err != nil {
		message := rc.Resource.RequiredMessage
		if message == "" {
			message = "请求参数无效"
		}
		rc.log(ctx).Debugf("validation failed: %v", err)
		return nil, utils.Wrap(utils.KindValidation, message, err)
	}
	return body, nil
}

// publish 发布变更事件，失败只记录日志
func (rc *ResourceController) publish(ctx *gin.Context, action events.Action, id interface{}, affected int64) {
	err := rc.Publisher.Publish(ctx.Request.Context(), events.Event{
		Resource:     rc.Resource.Name,
		Action:       action,
		ID:           id,
		AffectedRows: affected,
		At:           time.Now(),
	})
	if err != nil {
		rc.log(ctx).WithError(err).Warnf("cannot publish %s event", action)
	}
}
