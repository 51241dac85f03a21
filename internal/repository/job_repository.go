package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/database"
	"gigboard/internal/domain/geo"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	CreateJob(ctx context.Context, j job.Job, contactEnc []byte) error
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, []byte, error)
	// ListJobs returns jobs newest first. An empty status returns all.
	ListJobs(ctx context.Context, status job.Status) ([]job.Job, error)
	// ApplyUpdate executes a lifecycle decision as a single guarded write.
	// It returns false without error when the guard failed, meaning the
	// job moved out of the expected status under a concurrent actor.
	ApplyUpdate(ctx context.Context, id uuid.UUID, u job.Update) (bool, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, description, job_type, pay, pay_frequency, contact_enc,
	lat, lng, region, address, posted_by, status, assigned_user, created_at`

func (r *PostgresJobRepository) CreateJob(ctx context.Context, j job.Job, contactEnc []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, job_type, pay, pay_frequency, contact_enc,
			lat, lng, region, address, posted_by, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.Title, j.Description, j.JobType, j.Pay, string(j.PayFrequency), contactEnc,
		j.Location.Lat, j.Location.Lng, j.Region, j.Address, j.PostedBy, string(j.Status), j.CreatedAt,
	)
	return err
}

func (r *PostgresJobRepository) GetJob(ctx context.Context, id uuid.UUID) (job.Job, []byte, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, enc, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, nil, ErrJobNotFound
		}
		return job.Job{}, nil, err
	}

	if err := r.loadParticipants(ctx, &j); err != nil {
		return job.Job{}, nil, err
	}
	return j, enc, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, status job.Status) ([]job.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, _, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadParticipantsBatch(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadParticipantsBatch fills the applicant and approved sets for a list of
// jobs with one query per set table.
func (r *PostgresJobRepository) loadParticipantsBatch(ctx context.Context, jobs []job.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}

	applicants, err := r.setMembersBatch(ctx, "job_applicants", ids)
	if err != nil {
		return err
	}
	approved, err := r.setMembersBatch(ctx, "job_approved_seekers", ids)
	if err != nil {
		return err
	}

	for i := range jobs {
		jobs[i].Applicants = applicants[jobs[i].ID]
		jobs[i].ApprovedSeekers = approved[jobs[i].ID]
	}
	return nil
}

func (r *PostgresJobRepository) setMembersBatch(ctx context.Context, table string, ids []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id, user_id FROM `+table+` WHERE job_id = ANY($1) ORDER BY created_at`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]uuid.UUID)
	for rows.Next() {
		var jobID, userID uuid.UUID
		if err := rows.Scan(&jobID, &userID); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyUpdate maps a lifecycle Update onto SQL. The jobs-row write is
// always conditioned on the expected status, so two seekers racing to take
// the same job resolve at the store: the loser's write affects zero rows.
func (r *PostgresJobRepository) ApplyUpdate(ctx context.Context, id uuid.UUID, u job.Update) (bool, error) {
	if u.ExpectStatus == "" {
		return false, fmt.Errorf("update without status guard")
	}

	switch {
	case u.SetStatus != nil:
		set := []string{"status = $3"}
		args := []any{id, string(u.ExpectStatus), string(*u.SetStatus)}
		if u.SetAssignedUser != nil {
			set = append(set, "assigned_user = $4")
			args = append(args, *u.SetAssignedUser)
		}
		n, err := r.db.Exec(ctx,
			`UPDATE jobs SET `+strings.Join(set, ", ")+` WHERE id = $1 AND status = $2`,
			args...,
		)
		if err != nil {
			return false, err
		}
		return n > 0, nil

	case u.AddApplicant != nil:
		return r.guardedSetInsert(ctx, "job_applicants", id, u.ExpectStatus, *u.AddApplicant)

	case u.AddApprovedSeeker != nil:
		return r.guardedSetInsert(ctx, "job_approved_seekers", id, u.ExpectStatus, *u.AddApprovedSeeker)

	case u.RemoveApplicant != nil:
		return r.guardedSetDelete(ctx, "job_applicants", id, u.ExpectStatus, *u.RemoveApplicant)
	}

	return false, fmt.Errorf("empty update")
}

// guardedSetInsert adds a member to a set table only while the job is still
// in the expected status. The status check rides inside the INSERT SELECT
// so it cannot race with a concurrent transition.
func (r *PostgresJobRepository) guardedSetInsert(ctx context.Context, table string, jobID uuid.UUID, expect job.Status, userID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO `+table+` (job_id, user_id)
		 SELECT id, $2 FROM jobs WHERE id = $1 AND status = $3
		 ON CONFLICT DO NOTHING`,
		jobID, userID, string(expect),
	)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Zero rows is either a failed guard or an idempotent re-add; only the
	// failed guard is a conflict.
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// guardedSetDelete is the removal counterpart: the member only leaves the
// set while the job is still in the expected status, so a withdraw that
// lost a race to Take cannot mutate a taken job's applicant set.
func (r *PostgresJobRepository) guardedSetDelete(ctx context.Context, table string, jobID uuid.UUID, expect job.Status, userID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`DELETE FROM `+table+` t USING jobs j
		 WHERE j.id = t.job_id AND t.job_id = $1 AND t.user_id = $2 AND j.status = $3`,
		jobID, userID, string(expect),
	)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Zero rows is either a failed guard or an already-absent member; only
	// the failed guard is a conflict.
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return !exists, nil
}

func (r *PostgresJobRepository) loadParticipants(ctx context.Context, j *job.Job) error {
	applicants, err := r.setMembers(ctx, "job_applicants", j.ID)
	if err != nil {
		return err
	}
	approved, err := r.setMembers(ctx, "job_approved_seekers", j.ID)
	if err != nil {
		return err
	}
	j.Applicants = applicants
	j.ApprovedSeekers = approved
	return nil
}

func (r *PostgresJobRepository) setMembers(ctx context.Context, table string, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM `+table+` WHERE job_id = $1 ORDER BY created_at`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, []byte, error) {
	var (
		j         job.Job
		pay       float64
		freq      string
		status    string
		contact   []byte
		assigned  *uuid.UUID
		lat, lng  float64
		createdAt time.Time
	)
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.JobType, &pay, &freq, &contact,
		&lat, &lng, &j.Region, &j.Address, &j.PostedBy, &status, &assigned, &createdAt,
	)
	if err != nil {
		return job.Job{}, nil, err
	}

	j.Pay = pay
	j.PayFrequency = job.PayFrequency(freq)
	j.Location = geo.Coordinate{Lat: lat, Lng: lng}
	j.Status = job.Status(status)
	j.AssignedUser = assigned
	j.CreatedAt = createdAt
	return j, contact, nil
}
