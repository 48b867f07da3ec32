package maintenance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/01moynul/storefront-golang/internal/store"
	"github.com/01moynul/storefront-golang/internal/testutil"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	st := store.New(db)
	ctx := context.Background()

	created, err := SeedAdmin(ctx, st, "Root", "Root@Example.com", "correct horse", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, st, "Root again", "root@example.com", "other", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, testutil.Count(t, db, "admins"))

	admin, err := st.GetAdminByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Root", admin.Name)
	assert.Equal(t, "admin", admin.Role)
	assert.NotEqual(t, "correct horse", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("correct horse")))
}

func TestSeedAdminRequiresCredentials(t *testing.T) {
	st := store.New(testutil.NewDB(t))

	_, err := SeedAdmin(context.Background(), st, "Root", " ", "pw", "")
	assert.Error(t, err)
	_, err = SeedAdmin(context.Background(), st, "Root", "root@example.com", "", "")
	assert.Error(t, err)
}

func TestDumpNeverIncludesPasswords(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := SeedAdmin(context.Background(), store.New(db), "Root", "root@example.com", "correct horse", "")
	require.NoError(t, err)

	rows, err := Dump(context.Background(), db, "admins", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0], "password")
	assert.Equal(t, "root@example.com", rows[0]["email"])

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, rows))
	assert.NotContains(t, buf.String(), "$2a$")
}

func TestDumpLimitAndOrder(t *testing.T) {
	db := testutil.NewDB(t)
	for _, name := range []string{"Apple", "Samsung", "Sony"} {
		testutil.MustExec(t, db, `INSERT INTO brands (name, slug) VALUES (?, ?)`, name, name)
	}

	rows, err := Dump(context.Background(), db, "brands", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Apple", rows[0]["name"])
	assert.Equal(t, "Samsung", rows[1]["name"])

	rows, err = Dump(context.Background(), db, "brands", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestDumpRejectsUnknownTable(t *testing.T) {
	_, err := Dump(context.Background(), testutil.NewDB(t), "sqlite_master", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")
}

func TestVerify(t *testing.T) {
	db := testutil.NewDB(t)
	st := store.New(db)
	_, err := SeedAdmin(context.Background(), st, "Root", "root@example.com", "pw", "")
	require.NoError(t, err)
	testutil.MustExec(t, db, `INSERT INTO brands (name, slug) VALUES ('Apple', 'apple')`)

	report, err := Verify(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Counts.Admins)
	assert.Equal(t, 1, report.Counts.Brands)
	assert.Equal(t, 0, report.Counts.Products)
	assert.Equal(t, []AdminSummary{{Name: "Root", Email: "root@example.com", Role: "admin"}}, report.Admins)
}

func TestWriteFormats(t *testing.T) {
	v := map[string]int{"brands": 2}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, v))
	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, v, decoded)

	buf.Reset()
	require.NoError(t, Write(&buf, FormatYAML, v))
	assert.Equal(t, "brands: 2\n", buf.String())

	assert.Error(t, Write(&buf, "xml", v))
}

const brandPage = `<ul>
<li class="brand">Apple</li>
<li class="brand"> Samsung Electronics </li>
<li class="brand">apple</li>
<li class="brand">Marks &amp; Co</li>
<li class="brand"></li>
</ul>`

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, brandPage)
	}))
	defer srv.Close()

	names, err := Scrape(context.Background(), srv.Client(), srv.URL, `<li class="brand">([^<]*)</li>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Samsung Electronics", "Marks & Co"}, names)
}

func TestScrapeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Scrape(context.Background(), srv.Client(), srv.URL, `(.+)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	_, err = Scrape(context.Background(), srv.Client(), srv.URL, `no group`)
	assert.Error(t, err)

	_, err = Scrape(context.Background(), srv.Client(), srv.URL, `(`)
	assert.Error(t, err)
}

func TestNewBrandListYAML(t *testing.T) {
	list := NewBrandList([]string{"Apple", "Samsung Electronics"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, list))

	var decoded struct {
		Brands []map[string]any `yaml:"brands"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Brands, 2)
	assert.Equal(t, "samsung-electronics", decoded.Brands[1]["slug"])
	assert.Equal(t, 2, decoded.Brands[1]["sortOrder"])
	assert.Equal(t, true, decoded.Brands[0]["isActive"])
	assert.NotContains(t, decoded.Brands[0], "id")
}
