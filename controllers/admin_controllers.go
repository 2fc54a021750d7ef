package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/database"
	"github.com/greenround/screengolf-usage/middlewares"
	"github.com/greenround/screengolf-usage/services"
	"github.com/greenround/screengolf-usage/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// LoginForm -> page stub for the admin login form.
func (ac *AdminController) LoginForm(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "관리자 비밀번호를 입력하세요.", nil)
}

// Login checks the settings-stored admin password and opens an admin session.
func (ac *AdminController) Login(c *gin.Context) {
	password := c.PostForm("password")
	realPw := database.GetSetting(ac.DB, database.AdminPasswordKey, database.DefaultAdminPassword)

	if password != realPw {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("관리자 비밀번호가 틀렸습니다."))
		return
	}

	if err := middlewares.SetAdminSession(c); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Println("Admin login")
	c.Redirect(http.StatusFound, "/admin")
}

// Dashboard -> the 100 most recent active records across all employees.
// Canceled rows only show up in the export.
func (ac *AdminController) Dashboard(c *gin.Context) {
	records, err := database.GetUsageRecords(ac.DB, "", 100)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", records)
}

// UploadEmployees bulk-imports a roster spreadsheet (xlsx or legacy xls).
func (ac *AdminController) UploadEmployees(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("파일이 없습니다."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	count, err := services.ImportEmployees(ac.DB, file, fileHeader.Filename)
	if err != nil {
		utils.ErrorLogger.Printf("Roster import failed: %v", err)
		utils.RespondFailure(c, fmt.Sprintf("업데이트 실패: %s", err.Error()))
		return
	}
	if count == 0 {
		utils.RespondFailure(c, "업데이트 실패: 신규 사원이 없습니다.")
		return
	}

	utils.InfoLogger.Printf("Roster import: %d employees added", count)
	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("%d명의 사원 정보가 업데이트되었습니다.", count), gin.H{"count": count})
}

// BulkAdd registers employees pasted as rows into the admin form. Items
// without both id and name are skipped; a missing password defaults to the
// employee id.
func (ac *AdminController) BulkAdd(c *gin.Context) {
	var req struct {
		Data []struct {
			EmpID    string `json:"emp_id"`
			Name     string `json:"name"`
			Password string `json:"password"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	count := 0
	for _, item := range req.Data {
		if item.EmpID == "" || item.Name == "" {
			continue
		}
		created, err := database.UpsertEmployee(ac.DB, item.EmpID, item.Name, item.Password)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if created {
			count++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"message": fmt.Sprintf("%d명 등록 완료", count),
	})
}

// ListEmployees -> full roster, ordered by emp_id.
func (ac *AdminController) ListEmployees(c *gin.Context) {
	emps, err := database.GetAllEmployees(ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", emps)
}

// ResetData wipes employees and usage records. Settings survive.
func (ac *AdminController) ResetData(c *gin.Context) {
	if err := database.ResetAllData(ac.DB); err != nil {
		utils.ErrorLogger.Printf("Data reset failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.Println("All employee and usage data reset")
	utils.RespondJSON(c, http.StatusOK, "전체 데이터가 초기화되었습니다.", nil)
}

// Download streams the full usage history, canceled rows included, as an
// xlsx attachment.
func (ac *AdminController) Download(c *gin.Context) {
	f, err := services.BuildUsageExport(ac.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("ScreenGolf_Usage_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Export write failed: %v", err)
	}
}
