package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sunfix/sunfix-api/models"
)

func TestListClusters(t *testing.T) {
	setupControllerTestDB(t)

	router := setupTestRouter()
	router.GET("/clusters", ListClusters)

	req, _ := http.NewRequest("GET", "/clusters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, len(models.DefaultClusters))

	first := data[0].(map[string]interface{})
	assert.Equal(t, "Belgaum North", first["name"])
	assert.NotEmpty(t, first["location"])
}

func TestListIssueTypes(t *testing.T) {
	router := setupTestRouter()
	router.GET("/issue-types", ListIssueTypes)

	req, _ := http.NewRequest("GET", "/issue-types", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 4)

	values := make([]string, 0, len(data))
	for _, raw := range data {
		row := raw.(map[string]interface{})
		values = append(values, row["value"].(string))
		assert.NotEmpty(t, row["label"])
		assert.NotEmpty(t, row["description"])
	}
	assert.ElementsMatch(t, []string{
		models.IssueBattery,
		models.IssuePanel,
		models.IssueWiring,
		models.IssueInverter,
	}, values)
}
