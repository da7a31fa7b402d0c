package database

import (
	"context"
	"testing"

	"terminal-terrace/conduit/internal/model/user"
	dbPkg "terminal-terrace/conduit/packages/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
	"gorm.io/gorm"
)

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRegisterCallbacks_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		_ = tp.Shutdown(context.Background())
	})

	db, err := dbPkg.InitSQLite(&dbPkg.SQLiteConfig{ServiceName: "tracing-test", Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(&user.User{}, &user.Profile{}))
	require.NoError(t, RegisterCallbacks(db, "sqlite"))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&user.User{Email: "jake@jake.jake", Username: "jake", PasswordHash: "x"}).Error)

	var missing user.User
	err = db.WithContext(ctx).Where("username = ?", "ghost").First(&missing).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, span := range recorder.Ended() {
		byName[span.Name()] = span
	}

	create, ok := byName["gorm:create"]
	require.True(t, ok, "create span recorded")
	system, ok := spanAttr(create, "db.system")
	require.True(t, ok)
	assert.Equal(t, "sqlite", system.AsString())
	stmt, ok := spanAttr(create, "db.statement")
	require.True(t, ok)
	assert.Contains(t, stmt.AsString(), "INSERT INTO")
	rows, ok := spanAttr(create, "db.rows_affected")
	require.True(t, ok)
	assert.Equal(t, int64(1), rows.AsInt64())

	query, ok := byName["gorm:query"]
	require.True(t, ok, "query span recorded")
	table, ok := spanAttr(query, "db.sql.table")
	require.True(t, ok)
	assert.Equal(t, "users", table.AsString())
	assert.NotEqual(t, codes.Error, query.Status().Code, "record not found is not a span error")
}

func TestRegisterCallbacks_MarksFailedStatements(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(noop.NewTracerProvider())
		_ = tp.Shutdown(context.Background())
	})

	db, err := dbPkg.InitSQLite(&dbPkg.SQLiteConfig{ServiceName: "tracing-test", Path: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(&user.User{}, &user.Profile{}))
	require.NoError(t, RegisterCallbacks(db, "sqlite"))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&user.User{Email: "ann@conduit.io", Username: "ann", PasswordHash: "x"}).Error)
	err = db.WithContext(ctx).Create(&user.User{Email: "ann@conduit.io", Username: "ann2", PasswordHash: "x"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var failed []sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		if span.Name() == "gorm:create" && span.Status().Code == codes.Error {
			failed = append(failed, span)
		}
	}
	assert.Len(t, failed, 1)
}
