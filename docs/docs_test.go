package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info  struct{ Title string }                `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "BoldServe API", doc.Info.Title)

	svc := doc.Paths["/api/services/{id}"]
	for _, method := range []string{"get", "patch", "delete"} {
		assert.Contains(t, svc, method)
	}
	assert.Contains(t, doc.Paths["/api/orders/{id}/status"], "patch")
}
