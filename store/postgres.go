package store

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/lib/pq"

	"github.com/tresidus/tresidus-api/schema"
)

const uniqueViolation = "23505"

// requestRow is the relational shape of a consulting request. The
// communications list is kept as a JSON document in a text column.
//
// Timestamps must not be named CreatedAt/UpdatedAt, gorm overwrites those
// on save.
type requestRow struct {
	ID                      string `gorm:"primary_key"`
	Name                    string
	Email                   string `gorm:"index"`
	Company                 string
	Phone                   string
	ProjectType             string
	Budget                  string
	Timeline                string
	Description             string `gorm:"type:text"`
	PreferredDate           string
	PreferredTime           string
	CommunicationPreference string
	Notes                   string `gorm:"type:text"`
	Status                  string `gorm:"index"`
	Communications          string `gorm:"type:text"`
	SubmittedAt             time.Time
	ModifiedAt              time.Time
}

func (requestRow) TableName() string {
	return schema.ConsultingRequestCollection
}

func newRequestRow(r *schema.ConsultingRequest) (*requestRow, error) {
	communications := r.Communications
	if communications == nil {
		communications = []schema.Communication{}
	}

	encoded, err := json.Marshal(communications)
	if err != nil {
		return nil, err
	}

	return &requestRow{
		ID:                      r.ID,
		Name:                    r.Name,
		Email:                   r.Email,
		Company:                 r.Company,
		Phone:                   r.Phone,
		ProjectType:             r.ProjectType,
		Budget:                  r.Budget,
		Timeline:                r.Timeline,
		Description:             r.Description,
		PreferredDate:           r.PreferredDate,
		PreferredTime:           r.PreferredTime,
		CommunicationPreference: r.CommunicationPreference,
		Notes:                   r.Notes,
		Status:                  string(r.Status),
		Communications:          string(encoded),
		SubmittedAt:             r.CreatedAt,
		ModifiedAt:              r.UpdatedAt,
	}, nil
}

func (row *requestRow) request() (*schema.ConsultingRequest, error) {
	communications := []schema.Communication{}
	if row.Communications != "" {
		if err := json.Unmarshal([]byte(row.Communications), &communications); err != nil {
			return nil, err
		}
	}

	r := &schema.ConsultingRequest{
		ID:                      row.ID,
		Name:                    row.Name,
		Email:                   row.Email,
		Company:                 row.Company,
		Phone:                   row.Phone,
		ProjectType:             row.ProjectType,
		Budget:                  row.Budget,
		Timeline:                row.Timeline,
		Description:             row.Description,
		PreferredDate:           row.PreferredDate,
		PreferredTime:           row.PreferredTime,
		CommunicationPreference: row.CommunicationPreference,
		Notes:                   row.Notes,
		Status:                  schema.RequestStatus(row.Status),
		CreatedAt:               row.SubmittedAt.UTC(),
		UpdatedAt:               row.ModifiedAt.UTC(),
		Communications:          communications,
	}
	r.Normalize()
	return r, nil
}

// withStatementTimeout bounds every statement on the server, gorm v1 takes
// no context. lib/pq forwards unknown connection settings as run-time
// parameters.
func withStatementTimeout(conn string, timeout time.Duration) string {
	if strings.Contains(conn, "statement_timeout") {
		return conn
	}

	ms := strconv.FormatInt(int64(timeout/time.Millisecond), 10)
	if strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://") {
		sep := "?"
		if strings.Contains(conn, "?") {
			sep = "&"
		}
		return conn + sep + "statement_timeout=" + ms
	}
	return strings.TrimSpace(conn + " statement_timeout=" + ms)
}

// PostgresStore keeps requests in a single table keyed by id
type PostgresStore struct {
	ormDB *gorm.DB
}

func NewPostgresStore(ormDB *gorm.DB) *PostgresStore {
	return &PostgresStore{
		ormDB: ormDB,
	}
}

// Init migrates the request table
func (s *PostgresStore) Init(ctx context.Context) error {
	if err := s.ormDB.AutoMigrate(&requestRow{}).Error; err != nil {
		return storageError("init", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("get", err)
	}

	var row requestRow
	if err := s.ormDB.Where("id = ?", id).First(&row).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, storageError("get", err)
	}

	r, err := row.request()
	if err != nil {
		return nil, storageError("get", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]schema.ConsultingRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageError("list", err)
	}

	rows := []requestRow{}
	if err := s.ormDB.Order("submitted_at").Find(&rows).Error; err != nil {
		return nil, storageError("list", err)
	}

	requests := make([]schema.ConsultingRequest, 0, len(rows))
	for i := range rows {
		r, err := rows[i].request()
		if err != nil {
			return nil, storageError("list", err)
		}
		requests = append(requests, *r)
	}
	return requests, nil
}

// Put saves the row, inserting it when no row with the id exists yet
func (s *PostgresStore) Put(ctx context.Context, request *schema.ConsultingRequest) error {
	if err := ctx.Err(); err != nil {
		return storageError("put", err)
	}

	row, err := newRequestRow(request)
	if err != nil {
		return storageError("put", err)
	}

	err = s.ormDB.Save(row).Error
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		// a concurrent Put inserted the id first; last write wins
		err = s.ormDB.Save(row).Error
	}
	if err != nil {
		return storageError("put", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storageError("delete", err)
	}

	result := s.ormDB.Where("id = ?", id).Delete(&requestRow{})
	if result.Error != nil {
		return false, storageError("delete", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Ping is to check the storage health status
func (s *PostgresStore) Ping() error {
	return storageError("ping", s.ormDB.DB().Ping())
}

func (s *PostgresStore) Close() {
	_ = s.ormDB.Close()
}
