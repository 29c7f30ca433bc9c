package s3

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestArchiveKey(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	analysisID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	key := ArchiveKey(tenantID, analysisID, "AN01 lot 3.xlsx")
	assert.Equal(t, "tenants/11111111-1111-1111-1111-111111111111/analyses/22222222-2222-2222-2222-222222222222/AN01 lot 3.xlsx", key)

	// directory components in client file names are dropped
	key = ArchiveKey(tenantID, analysisID, "../../etc/rapport.xls")
	assert.Equal(t, "tenants/11111111-1111-1111-1111-111111111111/analyses/22222222-2222-2222-2222-222222222222/rapport.xls", key)
}

func TestAttachment(t *testing.T) {
	assert.Equal(t, `attachment; filename=rapport.xlsx`, attachment("tenants/t/analyses/a/rapport.xlsx"))
	assert.Equal(t, `attachment; filename="AN01 lot 3.xlsx"`, attachment("tenants/t/analyses/a/AN01 lot 3.xlsx"))
}
