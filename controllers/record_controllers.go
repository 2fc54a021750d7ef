package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/database"
	"github.com/greenround/screengolf-usage/utils"
)

type RecordController struct {
	DB *gorm.DB
}

func NewRecordController(db *gorm.DB) *RecordController {
	return &RecordController{DB: db}
}

// Dashboard -> the employee's 10 most recent records plus the
// default-password warning flag.
func (rc *RecordController) Dashboard(c *gin.Context) {
	empID := c.GetString("emp_id")

	records, err := database.GetUsageRecords(rc.DB, empID, 10)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"name":            c.GetString("user_name"),
		"records":         records,
		"show_pw_warning": database.IsDefaultPassword(rc.DB, empID),
	})
}

// AddRecord checks out a cart: one usage row per valid line item. Amounts are
// recomputed server-side as price × quantity.
func (rc *RecordController) AddRecord(c *gin.Context) {
	empID := c.GetString("emp_id")

	type cartItem struct {
		ItemName string `json:"item_name"`
		Quantity int    `json:"quantity"`
		Price    int    `json:"price"`
	}
	var req struct {
		UsageDate string     `json:"usage_date"`
		Cart      []cartItem `json:"cart"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.UsageDate == "" || len(req.Cart) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("날짜 또는 상품이 선택되지 않았습니다."))
		return
	}

	count := 0
	for _, item := range req.Cart {
		if item.ItemName == "" || item.Quantity <= 0 {
			continue
		}
		amount := item.Price * item.Quantity
		if err := database.AddUsageRecord(rc.DB, empID, req.UsageDate, item.ItemName, item.Quantity, amount); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		count++
	}

	if count == 0 {
		utils.RespondFailure(c, "등록할 유효한 상품이 없습니다.")
		return
	}
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("%d건의 이용 내역이 등록되었습니다.", count), nil)
}

// DeleteRecord soft-deletes one of the employee's own records. A nonexistent
// or foreign record reports failure without saying which.
func (rc *RecordController) DeleteRecord(c *gin.Context) {
	empID := c.GetString("emp_id")

	recordID, err := strconv.ParseUint(c.Param("record_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("잘못된 요청입니다."))
		return
	}

	ok, err := database.DeleteUsageRecord(rc.DB, uint(recordID), empID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		utils.RespondFailure(c, "취소 실패: 존재하지 않거나 권한이 없습니다.")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "이용 내역이 취소되었습니다.", nil)
}

// History -> the employee's full active history as JSON. The cap only bounds
// this in-app fetch; the admin export has none.
func (rc *RecordController) History(c *gin.Context) {
	empID := c.GetString("emp_id")

	records, err := database.GetUsageRecords(rc.DB, empID, 10000)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", records)
}
