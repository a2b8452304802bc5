package activitylog

import (
	"testing"

	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestUpdateChanges(t *testing.T) {
	rec := dbmodels.JobPost{
		Title:    "Backend Developer",
		Location: "Berlin",
	}
	rec.ID = "job-1"
	rec.CompanyID = "company-1"

	t.Run(`only changed fields are recorded`, func(t *testing.T) {
		changes := UpdateChanges("Job details updated", rec, map[string]interface{}{
			"title":    "Senior Backend Developer",
			"location": "Berlin",
		})
		require.Equal(t, "Job details updated", changes.Description)
		require.Len(t, changes.Data, 1)
		require.Equal(t, "Title", changes.Data[0].Field)
		require.Equal(t, "Backend Developer", changes.Data[0].OldValue)
		require.Equal(t, "Senior Backend Developer", changes.Data[0].NewValue)
	})

	t.Run(`fields without a comment tag keep the column name`, func(t *testing.T) {
		changes := UpdateChanges("touch", rec, map[string]interface{}{
			"slug": "backend-developer-2",
		})
		require.Len(t, changes.Data, 1)
		require.Equal(t, "slug", changes.Data[0].Field)
	})

	t.Run(`service fields never show up in the trail`, func(t *testing.T) {
		changes := UpdateChanges("touch", rec, map[string]interface{}{
			"company_id": "company-2",
			"id":         "job-9",
		})
		require.Empty(t, changes.Data)
	})

	t.Run(`empty update map keeps the description`, func(t *testing.T) {
		changes := UpdateChanges("nothing changed", rec, nil)
		require.Equal(t, "nothing changed", changes.Description)
		require.Empty(t, changes.Data)
	})
}
