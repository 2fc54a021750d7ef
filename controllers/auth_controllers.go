package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/database"
	"github.com/greenround/screengolf-usage/middlewares"
	"github.com/greenround/screengolf-usage/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Index -> landing page; logged-in employees go straight to the dashboard.
func (ac *AuthController) Index(c *gin.Context) {
	if _, ok := middlewares.EmployeeClaims(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "로그인이 필요합니다.", nil)
}

// Login verifies emp_id/password and opens an employee session.
func (ac *AuthController) Login(c *gin.Context) {
	empID := c.PostForm("emp_id")
	password := c.PostForm("password")

	user, err := database.VerifyUser(ac.DB, empID, password)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if user == nil {
		// Which field was wrong is deliberately not disclosed.
		utils.RespondError(c, http.StatusUnauthorized, errors.New("아이디 또는 비밀번호가 일치하지 않습니다."))
		return
	}

	if err := middlewares.SetEmployeeSession(c, user.EmpID, user.Name); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Employee login: %s", user.EmpID)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears both employee and admin sessions.
func (ac *AuthController) Logout(c *gin.Context) {
	middlewares.ClearSessions(c)
	c.Redirect(http.StatusFound, "/")
}

// ResetPasswordForm -> page stub for the reset form.
func (ac *AuthController) ResetPasswordForm(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "사번을 입력하면 비밀번호가 초기화됩니다.", nil)
}

// ResetPassword sets the password back to the employee-id default.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	empID := c.PostForm("emp_id")

	ok, err := database.ResetPasswordToDefault(ac.DB, empID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		utils.RespondFailure(c, "존재하지 않는 아이디(사번)입니다.")
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("비밀번호가 초기화되었습니다. (초기 비밀번호: %s)", empID), nil)
}

// ChangePasswordForm -> page stub for the change form.
func (ac *AuthController) ChangePasswordForm(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "비밀번호 변경", nil)
}

// ChangePassword requires the current password to match before overwriting.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	empID := c.GetString("emp_id")
	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirmPassword := c.PostForm("confirm_password")

	user, err := database.VerifyUser(ac.DB, empID, currentPassword)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if user == nil {
		utils.RespondFailure(c, "현재 비밀번호가 일치하지 않습니다.")
		return
	}

	if newPassword == "" || newPassword != confirmPassword {
		utils.RespondFailure(c, "새 비밀번호가 일치하지 않습니다.")
		return
	}

	if err := database.UpdatePassword(ac.DB, empID, newPassword); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "비밀번호가 성공적으로 변경되었습니다.", nil)
}
