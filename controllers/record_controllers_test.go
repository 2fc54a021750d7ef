package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenround/screengolf-usage/database"
)

func TestEmployeeRecordFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	_, err := database.UpsertEmployee(db, "00123", "Kim", "")
	assert.NoError(t, err)

	// Login with the default password (= employee id).
	w := postForm(r, "/login", "emp_id=00123&password=00123", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	cookies := sessionCookies(t, w)

	// Dashboard shows the default-password warning.
	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var dashboard struct {
		Success bool `json:"success"`
		Data    struct {
			Name          string                   `json:"name"`
			Records       []map[string]interface{} `json:"records"`
			ShowPwWarning bool                     `json:"show_pw_warning"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.True(t, dashboard.Success)
	assert.Equal(t, "Kim", dashboard.Data.Name)
	assert.True(t, dashboard.Data.ShowPwWarning)
	assert.Empty(t, dashboard.Data.Records)

	// Cart checkout: amount is recomputed as price × quantity per line.
	payload := `{"usage_date":"2024-05-01","cart":[{"item_name":"9홀","quantity":2,"price":2000}]}`
	w = postJSON(r, "/api/record", payload, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "1건의 이용 내역이 등록되었습니다.", resp.Message)

	// History includes the new record with the computed amount.
	w = doRequest(r, http.MethodGet, "/api/history", "", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var history struct {
		Success bool `json:"success"`
		Data    []struct {
			ID       uint   `json:"id"`
			ItemName string `json:"item_name"`
			Quantity int    `json:"quantity"`
			Amount   int    `json:"amount"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.True(t, history.Success)
	assert.Len(t, history.Data, 1)
	assert.Equal(t, "9홀", history.Data[0].ItemName)
	assert.Equal(t, 4000, history.Data[0].Amount)

	// Cancel it; the history no longer lists it.
	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/record/%d", history.Data[0].ID), "", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	w = doRequest(r, http.MethodGet, "/api/history", "", nil, cookies)
	history.Data = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Empty(t, history.Data)
}

func TestAddRecordValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	_, err := database.UpsertEmployee(db, "100", "Kim", "")
	assert.NoError(t, err)
	w := postForm(r, "/login", "emp_id=100&password=100", nil)
	cookies := sessionCookies(t, w)

	// Missing date or empty cart is a 400.
	w = postJSON(r, "/api/record", `{"cart":[{"item_name":"9홀","quantity":1,"price":2000}]}`, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/record", `{"usage_date":"2024-05-01","cart":[]}`, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Lines without a name or positive quantity are dropped; nothing valid
	// left reports failure without an error status.
	w = postJSON(r, "/api/record", `{"usage_date":"2024-05-01","cart":[{"item_name":"","quantity":1,"price":2000},{"item_name":"9홀","quantity":0,"price":2000}]}`, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	records, err := database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteRecordOfOtherEmployeeFails(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	_, err := database.UpsertEmployee(db, "100", "Kim", "")
	assert.NoError(t, err)
	_, err = database.UpsertEmployee(db, "200", "Lee", "")
	assert.NoError(t, err)
	assert.NoError(t, database.AddUsageRecord(db, "100", "2024-05-01", "9홀", 1, 2000))

	records, err := database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)

	// Logged in as 200, targeting 100's record.
	w := postForm(r, "/login", "emp_id=200&password=200", nil)
	cookies := sessionCookies(t, w)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/record/%d", records[0].ID), "", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	// The record stays active.
	records, err = database.GetUsageRecords(db, "100", 10)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEmployeeRoutesRequireSession(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	// API routes answer 401 JSON.
	w := doRequest(r, http.MethodGet, "/api/history", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/api/record", `{"usage_date":"2024-05-01","cart":[]}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Page routes redirect to the login page.
	w = doRequest(r, http.MethodGet, "/dashboard", "", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
