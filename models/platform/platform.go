package platform

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/juju/errors"

	"github.com/gamegeeks/gamegeeks/pkg/utils"
)

// SchemaName is the name under which Platform is registered
// in the API document components
const SchemaName = "PlatformModel"

// Name length bounds, in characters
const (
	MinNameLength = 1
	MaxNameLength = 100
)

var idRegexp = regexp.MustCompile(`^[0-9a-f]{24}$`)

// Platform is a gaming platform exposed by the API
type Platform struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// TypeName implements openapi.Typer
func (Platform) TypeName() string { return SchemaName }

// Example is the platform advertised in the API documentation
var Example = Platform{
	ID:          "6362927a289959266849759a",
	Name:        "PC",
	Description: "",
}

// Store persists platforms
type Store interface {
	// List returns at most pageSize platforms ordered by ID, starting after last
	List(pageSize uint64, last *string) ([]*Platform, error)
	Load(id string) (*Platform, error)
	Create(name, description string) (*Platform, error)
	Update(p *Platform) error
	Delete(id string) error
	Count() (int64, error)
}

// NewID returns a 24 hex characters identifier: a 4 bytes big-endian
// unix timestamp followed by 8 random bytes, so IDs sort by creation time
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	rnd := uuid.Must(uuid.NewV4())
	copy(b[4:], rnd[:8])
	return hex.EncodeToString(b[:])
}

// ValidID asserts that id could have been generated by NewID
func ValidID(id string) error {
	if !idRegexp.MatchString(id) {
		return errors.NotValidf("platform id %q", id)
	}
	return nil
}

// Normalize trims the spaces surrounding the name.
// Names are stored trimmed, and compared regardless of case.
func (p *Platform) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
}

// Valid asserts that the platform can be stored:
// its name, once trimmed, must not be blank
func (p *Platform) Valid() error {
	return utils.ValidString("name", strings.TrimSpace(p.Name), MinNameLength, MaxNameLength)
}
