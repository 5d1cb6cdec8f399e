package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/repository"
	"github.com/CUknot/meetroom/repository/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicates(t *testing.T) {
	store, _ := storetest.Open(t)
	ctx := context.Background()

	storetest.User(t, store, "alice")

	err := store.CreateUser(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = store.CreateUser(ctx, &models.User{Username: "alice2", Email: "alice@example.com", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateUserHashesPassword(t *testing.T) {
	store, _ := storetest.Open(t)
	u := storetest.User(t, store, "bob")

	got, err := store.UserByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEqual(t, "secret123", got.Password)
	assert.NoError(t, got.ValidatePassword("secret123"))
	assert.Error(t, got.ValidatePassword("wrong"))
}

func TestUserNotFound(t *testing.T) {
	store, _ := storetest.Open(t)
	_, err := store.UserByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActiveRoomBySessionID(t *testing.T) {
	store, _ := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	room := storetest.Room(t, store, alice, "room-1")

	got, err := store.ActiveRoomBySessionID(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)

	_, err = store.ActiveRoomBySessionID(ctx, "room-missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.DeactivateRoom(ctx, room.ID))
	_, err = store.ActiveRoomBySessionID(ctx, "room-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListActiveRoomsNewestFirst(t *testing.T) {
	store, _ := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	first := storetest.Room(t, store, alice, "room-a")
	second := storetest.Room(t, store, alice, "room-b")
	hidden := storetest.Room(t, store, alice, "room-c")
	require.NoError(t, store.DeactivateRoom(ctx, hidden.ID))

	rooms, err := store.ListActiveRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, second.ID, rooms[0].ID)
	assert.Equal(t, first.ID, rooms[1].ID)
	assert.Equal(t, "alice", rooms[0].CreatorUsername)
}

func TestUpsertParticipantIsIdempotent(t *testing.T) {
	store, db := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	bob := storetest.User(t, store, "bob")
	room := storetest.Room(t, store, alice, "room-1")

	t0 := time.Now().Add(-time.Hour).UTC()
	p, err := store.UpsertParticipant(ctx, room.ID, bob.ID, models.RoleParticipant, t0)
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, p.Role)
	assert.False(t, p.IsMuted)
	assert.Equal(t, "bob", p.User.Username)

	require.NoError(t, store.SetMuted(ctx, room.ID, bob.ID, true))

	// A second join asking for a different role must not change anything but joined_at.
	t1 := t0.Add(30 * time.Minute)
	again, err := store.UpsertParticipant(ctx, room.ID, bob.ID, models.RoleAdmin, t1)
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, models.RoleParticipant, again.Role)
	assert.True(t, again.IsMuted)
	assert.WithinDuration(t, t1, again.JoinedAt, time.Second)

	var count int64
	require.NoError(t, db.Model(&models.Participant{}).Where("room_id = ? AND user_id = ?", room.ID, bob.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetMutedUnknownTarget(t *testing.T) {
	store, _ := storetest.Open(t)
	alice := storetest.User(t, store, "alice")
	room := storetest.Room(t, store, alice, "room-1")

	err := store.SetMuted(context.Background(), room.ID, 999, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListParticipantsOrderedByJoin(t *testing.T) {
	store, _ := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	bob := storetest.User(t, store, "bob")
	room := storetest.Room(t, store, alice, "room-1")

	now := time.Now().UTC()
	_, err := store.UpsertParticipant(ctx, room.ID, bob.ID, models.RoleParticipant, now)
	require.NoError(t, err)
	_, err = store.UpsertParticipant(ctx, room.ID, alice.ID, models.RoleAdmin, now.Add(-time.Minute))
	require.NoError(t, err)

	rows, err := store.ListParticipants(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].User.Username)
	assert.Equal(t, "bob", rows[1].User.Username)
}

func TestCreateMessageIfUnmuted(t *testing.T) {
	store, db := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	bob := storetest.User(t, store, "bob")
	room := storetest.Room(t, store, alice, "room-1")
	_, err := store.UpsertParticipant(ctx, room.ID, bob.ID, models.RoleParticipant, time.Now())
	require.NoError(t, err)

	msg, err := store.CreateMessageIfUnmuted(ctx, room.ID, bob.ID, "hi", time.Now())
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	require.NoError(t, store.SetMuted(ctx, room.ID, bob.ID, true))
	_, err = store.CreateMessageIfUnmuted(ctx, room.ID, bob.ID, "blocked", time.Now())
	assert.ErrorIs(t, err, repository.ErrMuted)

	_, err = store.CreateMessageIfUnmuted(ctx, room.ID, alice.ID, "never joined", time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecentMessagesKeepsNewestInOrder(t *testing.T) {
	store, _ := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	room := storetest.Room(t, store, alice, "room-1")
	_, err := store.UpsertParticipant(ctx, room.ID, alice.ID, models.RoleAdmin, time.Now())
	require.NoError(t, err)

	base := time.Now().UTC()
	for _, text := range []string{"one", "two", "three"} {
		base = base.Add(time.Second)
		_, err := store.CreateMessageIfUnmuted(ctx, room.ID, alice.ID, text, base)
		require.NoError(t, err)
	}

	rows, err := store.RecentMessages(ctx, room.ID, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "two", rows[0].Text)
	assert.Equal(t, "three", rows[1].Text)
	assert.Equal(t, "alice", rows[1].User.Username)
}

func TestRecordingLifecycle(t *testing.T) {
	store, _ := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	room := storetest.Room(t, store, alice, "room-1")

	require.NoError(t, store.CreateRecording(ctx, &models.Recording{RoomID: room.ID, RecordingID: "room-1~1"}))
	require.NoError(t, store.CompleteRecording(ctx, "room-1~1", 12.5, "https://media/rec.mp4"))
	assert.ErrorIs(t, store.CompleteRecording(ctx, "unknown", 1, ""), repository.ErrNotFound)

	recs, err := store.ListRecordings(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.RecordingCompleted, recs[0].Status)
	assert.Equal(t, 12.5, recs[0].Duration)
	assert.Equal(t, "https://media/rec.mp4", recs[0].FilePath)
	assert.Equal(t, room.Name, recs[0].RoomName)
}

func TestPing(t *testing.T) {
	store, _ := storetest.Open(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestUpsertParticipantConcurrentJoins(t *testing.T) {
	store, db := storetest.Open(t)
	ctx := context.Background()
	alice := storetest.User(t, store, "alice")
	bob := storetest.User(t, store, "bob")
	room := storetest.Room(t, store, alice, "room-race")

	_, err := store.UpsertParticipant(ctx, room.ID, bob.ID, models.RoleParticipant, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.SetMuted(ctx, room.ID, bob.ID, true))

	const n = 16
	var wg sync.WaitGroup
	ids := make([]uint, n)
	errs := make([]error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			p, err := store.UpsertParticipant(ctx, room.ID, alice.ID, models.RoleAdmin, time.Now())
			errs[i] = err
			if err == nil {
				ids[i] = p.ID
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			// A later join must never promote bob or clear his mute.
			_, errs[n+i] = store.UpsertParticipant(ctx, room.ID, bob.ID, models.RoleAdmin, time.Now())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	var count int64
	require.NoError(t, db.Model(&models.Participant{}).Where("room_id = ? AND user_id = ?", room.ID, alice.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.Participant{}).Where("room_id = ? AND user_id = ?", room.ID, bob.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	a, err := store.Participant(ctx, room.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, a.Role)

	b, err := store.Participant(ctx, room.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, b.Role)
	assert.True(t, b.IsMuted)
}
