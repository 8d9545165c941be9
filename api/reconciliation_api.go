/*
Copyright 2025 DukaRecon Authors.

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
package api

import (
	"net/http"
	"time"

	"github.com/dukahq/dukarecon/internal/apierror"

	"github.com/gin-gonic/gin"
)

// parsePeriod reads the tenant_id/from/to query parameters shared by the
// period endpoints. from/to are RFC3339; omitted, the window covers the last
// 24 hours, one attendant shift with room to spare.
func parsePeriod(c *gin.Context) (tenantID string, from, to time.Time, ok bool) {
	tenantID = c.Query("tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id query parameter is required"})
		return "", from, to, false
	}

	to = time.Now()
	from = to.Add(-24 * time.Hour)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC3339 timestamp"})
			return "", from, to, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC3339 timestamp"})
			return "", from, to, false
		}
		to = parsed
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return "", from, to, false
	}
	return tenantID, from, to, true
}

// GetShiftReport reconciles a tenant's payments against received-money events
// for a period.
func (a Api) GetShiftReport(c *gin.Context) {
	tenantID, from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	report, err := a.recon.GetShiftReport(c.Request.Context(), tenantID, from, to)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
