package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenround/screengolf-usage/utils"
)

// Employee and admin logins live in separate cookies so one can be active
// without the other, mirroring the two independent session flags of the
// original app.
const (
	EmployeeCookie = "session"
	AdminCookie    = "admin_session"
)

var errLoginRequired = errors.New("로그인이 필요합니다.")

// SetEmployeeSession issues the employee session cookie.
func SetEmployeeSession(c *gin.Context, empID, name string) error {
	token, err := utils.GenerateSessionToken(empID, name, false)
	if err != nil {
		return err
	}
	c.SetCookie(EmployeeCookie, token, int(utils.SessionLifetime.Seconds()), "/", "", false, true)
	return nil
}

// SetAdminSession issues the admin session cookie.
func SetAdminSession(c *gin.Context) error {
	token, err := utils.GenerateSessionToken("", "", true)
	if err != nil {
		return err
	}
	c.SetCookie(AdminCookie, token, int(utils.SessionLifetime.Seconds()), "/", "", false, true)
	return nil
}

// ClearSessions drops both cookies.
func ClearSessions(c *gin.Context) {
	c.SetCookie(EmployeeCookie, "", -1, "/", "", false, true)
	c.SetCookie(AdminCookie, "", -1, "/", "", false, true)
}

// EmployeeClaims reads and validates the employee session cookie.
func EmployeeClaims(c *gin.Context) (*utils.SessionClaims, bool) {
	token, err := c.Cookie(EmployeeCookie)
	if err != nil || token == "" {
		return nil, false
	}
	claims, err := utils.ParseSessionToken(token)
	if err != nil || claims.EmpID == "" {
		return nil, false
	}
	return claims, true
}

// AdminClaims reads and validates the admin session cookie.
func AdminClaims(c *gin.Context) (*utils.SessionClaims, bool) {
	token, err := c.Cookie(AdminCookie)
	if err != nil || token == "" {
		return nil, false
	}
	claims, err := utils.ParseSessionToken(token)
	if err != nil || !claims.IsAdmin {
		return nil, false
	}
	return claims, true
}

// EmployeeAuth protects employee API routes: 401 JSON without a session.
func EmployeeAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := EmployeeClaims(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errLoginRequired)
			c.Abort()
			return
		}
		c.Set("emp_id", claims.EmpID)
		c.Set("user_name", claims.Name)
		c.Next()
	}
}

// EmployeePage protects employee page routes: redirect to the login page
// without a session.
func EmployeePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := EmployeeClaims(c)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Set("emp_id", claims.EmpID)
		c.Set("user_name", claims.Name)
		c.Next()
	}
}

// AdminAuth protects admin API routes: 401 JSON without an admin session.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := AdminClaims(c); !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Unauthorized"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminPage protects admin page routes: redirect to the admin login without a
// session.
func AdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := AdminClaims(c); !ok {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
