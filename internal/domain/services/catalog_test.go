package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/regguard/internal/domain/entities"
	"github.com/ochairo/regguard/internal/domain/interfaces"
)

// stubSchemas reports fixed violations per schema name
type stubSchemas struct {
	violations map[string][]string
	err        error
}

func (s *stubSchemas) Validate(schema string, _ interface{}) ([]string, error) {
	return s.violations[schema], s.err
}

func anyDocument() func(string) (interface{}, error) {
	return func(string) (interface{}, error) { return map[string]interface{}{}, nil }
}

func TestNewCatalog_CoversEveryType(t *testing.T) {
	catalog, err := NewCatalog(Loaders{}, &stubSchemas{}, CatalogOptions{}, &interfaces.NoOpLogger{})
	require.NoError(t, err)

	for _, typ := range entities.ArtifactTypes() {
		assert.NotNil(t, catalog.Types[typ].PerFile, typ)
	}
	assert.Len(t, catalog.Cross, 2)
	assert.NotNil(t, catalog.Types[entities.TypeRoles].Collection)
	assert.Nil(t, catalog.Types[entities.TypeSettings].Collection)
}

func TestCatalog_RolesChain(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "roles/good.yml", "roles:\n  - name: officer\n")
	empty := writeFile(t, dir, "roles/empty.yml", "  \n")
	txt := writeFile(t, dir, "roles/roles.txt", "roles: []\n")
	bad := writeFile(t, dir, "roles/bad.yml", "roles:\n  - name: Bad\n")

	l := Loaders{
		YAMLDocument: anyDocument(),
		Roles: fixed(map[string]*entities.RoleCatalog{
			good: {Roles: []entities.Role{{Name: "officer"}}},
			bad:  {Roles: []entities.Role{{Name: "Bad"}}},
		}),
	}
	logger := &recordingLogger{}
	catalog, err := NewCatalog(l, &stubSchemas{}, CatalogOptions{}, logger)
	require.NoError(t, err)

	vctx := entities.NewValidationContext(entities.TypeRoles)
	chain := catalog.Types[entities.TypeRoles].PerFile

	assert.True(t, chain.Validate(good, vctx).Empty())
	assert.Equal(t, []string{"file is empty"}, messages(chain.Validate(empty, vctx)))
	assert.Equal(t, []string{"unexpected file extension '.txt', expected one of: .yml, .yaml"}, messages(chain.Validate(txt, vctx)))
	assert.Equal(t, []string{"role name 'Bad' must match ^[a-z][a-z0-9-]*$"}, messages(chain.Validate(bad, vctx)))
	assert.Equal(t, []string{"artifact is valid"}, logger.messages("info"))
	assert.Len(t, logger.messages("error"), 3)
}

func TestCatalog_SchemaViolationsStopChain(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bp-auth/a.yml", "realm: nope\n")

	loads := 0
	l := Loaders{
		YAMLDocument: anyDocument(),
		Authorization: func(string) (*entities.Authorization, error) {
			loads++
			return &entities.Authorization{Realm: "nope"}, nil
		},
	}
	schemas := &stubSchemas{violations: map[string][]string{"bp-auth": {"realm: invalid"}}}
	catalog, err := NewCatalog(l, schemas, CatalogOptions{}, &interfaces.NoOpLogger{})
	require.NoError(t, err)

	errs := catalog.Types[entities.TypeAuthorization].PerFile.Validate(path, entities.NewValidationContext(entities.TypeAuthorization))
	assert.Equal(t, []string{"does not conform to schema: realm: invalid"}, messages(errs))
	assert.Zero(t, loads)
}

func TestSchemaConformance_Errors(t *testing.T) {
	vctx := entities.NewValidationContext(entities.TypeForm)

	decodeFails := SchemaConformance(func(string) (interface{}, error) { return nil, errors.New("bad json") }, &stubSchemas{})
	errs := decodeFails.Validate("f.json", vctx)
	require.Equal(t, 1, errs.Len())
	assert.Equal(t, entities.ValidationError{Type: entities.TypeForm, File: "f.json", Message: "failed to parse file", Cause: "bad json"}, errs.Sorted()[0])

	noSchema := SchemaConformance(anyDocument(), &stubSchemas{err: errors.New("no schema")})
	assert.Equal(t, []string{"failed to check schema"}, messages(noSchema.Validate("f.json", vctx)))
}

func TestCatalog_ExcerptChain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "excerpts/ok/index.html.ftl", "<html/>")
	writeFile(t, dir, "excerpts/blank/index.html.ftl", "")
	writeFile(t, dir, "excerpts/none/readme.md", "x")

	catalog, err := NewCatalog(Loaders{}, &stubSchemas{}, CatalogOptions{}, &interfaces.NoOpLogger{})
	require.NoError(t, err)
	chain := catalog.Types[entities.TypeExcerpt].PerFile
	vctx := entities.NewValidationContext(entities.TypeExcerpt)

	assert.True(t, chain.Validate(dir+"/excerpts/ok", vctx).Empty())
	assert.Equal(t, []string{"index.html.ftl is empty"}, messages(chain.Validate(dir+"/excerpts/blank", vctx)))
	assert.Equal(t, []string{"missing index.html.ftl"}, messages(chain.Validate(dir+"/excerpts/none", vctx)))
	assert.Equal(t, []string{"directory does not exist"}, messages(chain.Validate(dir+"/excerpts/gone", vctx)))
}
