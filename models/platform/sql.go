package platform

import (
	"github.com/Masterminds/squirrel"
	"github.com/juju/errors"
	"github.com/loopfz/gadgeto/zesty"

	"github.com/gamegeeks/gamegeeks/db/pgjuju"
	"github.com/gamegeeks/gamegeeks/db/sqlgenerator"
)

// TableName is the name of the platform table in DB
const TableName = "platform"

var _ Store = (*SQLStore)(nil)

// SQLStore persists platforms in the postgres DB registered in zesty
type SQLStore struct {
	dbp zesty.DBProvider
}

// NewSQLStore returns a Store backed by the given DB provider
func NewSQLStore(dbp zesty.DBProvider) *SQLStore {
	return &SQLStore{dbp: dbp}
}

// List implements Store
func (s *SQLStore) List(pageSize uint64, last *string) (pp []*Platform, err error) {
	defer errors.DeferredAnnotatef(&err, "Failed to list platforms")

	query, params, err := listQuery(pageSize, last).ToSql()
	if err != nil {
		return nil, err
	}

	_, err = s.dbp.DB().Select(&pp, query, params...)
	if err != nil {
		return nil, pgjuju.Interpret(err)
	}
	return pp, nil
}

// Load implements Store
func (s *SQLStore) Load(id string) (p *Platform, err error) {
	defer errors.DeferredAnnotatef(&err, "Failed to load platform")

	query, params, err := pSelector.Where(
		squirrel.Eq{`"platform".id`: id},
	).ToSql()
	if err != nil {
		return nil, err
	}

	p = &Platform{}
	if err := s.dbp.DB().SelectOne(p, query, params...); err != nil {
		return nil, pgjuju.Interpret(err)
	}
	return p, nil
}

// Create implements Store
func (s *SQLStore) Create(name, description string) (p *Platform, err error) {
	defer errors.DeferredAnnotatef(&err, "Failed to create platform")

	p = &Platform{
		ID:          NewID(),
		Name:        name,
		Description: description,
	}
	p.Normalize()
	if err := p.Valid(); err != nil {
		return nil, err
	}
	if err := s.dbp.DB().Insert(p); err != nil {
		return nil, pgjuju.Interpret(err)
	}
	return p, nil
}

// Update implements Store
func (s *SQLStore) Update(p *Platform) (err error) {
	defer errors.DeferredAnnotatef(&err, "Failed to update platform")

	p.Normalize()
	if err := p.Valid(); err != nil {
		return err
	}
	rows, err := s.dbp.DB().Update(p)
	if err != nil {
		return pgjuju.Interpret(err)
	} else if rows == 0 {
		return errors.NotFoundf("No such platform to update: %s", p.ID)
	}
	return nil
}

// Delete implements Store
func (s *SQLStore) Delete(id string) (err error) {
	defer errors.DeferredAnnotatef(&err, "Failed to delete platform")

	rows, err := s.dbp.DB().Delete(&Platform{ID: id})
	if err != nil {
		return pgjuju.Interpret(err)
	} else if rows == 0 {
		return errors.NotFoundf("No such platform to delete: %s", id)
	}
	return nil
}

// Count implements Store
func (s *SQLStore) Count() (int64, error) {
	query, params, err := countQuery.ToSql()
	if err != nil {
		return 0, err
	}
	n, err := s.dbp.DB().SelectInt(query, params...)
	if err != nil {
		return 0, pgjuju.Interpret(err)
	}
	return n, nil
}

func listQuery(pageSize uint64, last *string) squirrel.SelectBuilder {
	return sqlgenerator.Page(pSelector, `"platform".id`, pageSize, last)
}

var (
	pSelector = sqlgenerator.PGsql.Select(
		`"platform".id, "platform".name, "platform".description`,
	).From(
		`"platform"`,
	)

	countQuery = sqlgenerator.PGsql.Select(`count(*)`).From(`"platform"`)
)
