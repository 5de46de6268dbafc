package systems

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

func TestFindNearestTarget(t *testing.T) {
	tests := []struct {
		name       string
		from       mgl64.Vec3
		candidates []TargetCandidate
		wantID     ecs.EntityID
		wantFound  bool
	}{
		{
			name:      "no candidates",
			from:      mgl64.Vec3{},
			wantFound: false,
		},
		{
			name: "single candidate",
			from: mgl64.Vec3{},
			candidates: []TargetCandidate{
				{ID: 3, Position: mgl64.Vec3{5, 0, 0}},
			},
			wantID:    3,
			wantFound: true,
		},
		{
			name: "nearest wins regardless of order",
			from: mgl64.Vec3{0, 0.2, 0.5},
			candidates: []TargetCandidate{
				{ID: 1, Position: mgl64.Vec3{-3, 0.4, 2.5}},
				{ID: 2, Position: mgl64.Vec3{2, 0, 0.5}},
				{ID: 3, Position: mgl64.Vec3{-2, 0.4, 2.5}},
			},
			wantID:    2,
			wantFound: true,
		},
		{
			name: "tie keeps lowest id",
			from: mgl64.Vec3{},
			candidates: []TargetCandidate{
				{ID: 4, Position: mgl64.Vec3{1, 0, 0}},
				{ID: 7, Position: mgl64.Vec3{-1, 0, 0}},
				{ID: 9, Position: mgl64.Vec3{0, 0, 1}},
			},
			wantID:    4,
			wantFound: true,
		},
		{
			name: "non-finite positions ignored",
			from: mgl64.Vec3{},
			candidates: []TargetCandidate{
				{ID: 1, Position: mgl64.Vec3{nan(), 0, 0}},
				{ID: 2, Position: mgl64.Vec3{10, 0, 0}},
			},
			wantID:    2,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindNearestTarget(tt.from, tt.candidates)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && got.ID != tt.wantID {
				t.Errorf("nearest = %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

// TestShooterSystem_FiresAtNearestTarget 射手在原点，偏移 (0,0.2,0.5)，目标在 (2,0,0.5)
// 每帧 0.5s × 3：只在 t=1.0s 发射一次，方向 ≈ (2,-0.2,0)
func TestShooterSystem_FiresAtNearestTarget(t *testing.T) {
	em := ecs.NewEntityManager()
	shooterID := createTestShooter(t, em, mgl64.Vec3{}, 1.0)
	targetID := createTestTarget(t, em, mgl64.Vec3{2, 0, 0.5})

	rec := &eventRecorder{}
	system := NewShooterSystem(em, rec.dispatcher(), testShooterSettings())

	for tick := 1; tick <= 3; tick++ {
		system.Update(0.5)
		got := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em))
		want := 0
		if tick >= 2 {
			want = 1
		}
		if got != want {
			t.Fatalf("tick %d: expected %d projectiles, got %d", tick, want, got)
		}
	}

	if len(rec.spawned) != 1 {
		t.Fatalf("expected 1 spawn event, got %d", len(rec.spawned))
	}
	spawn := rec.spawned[0]
	if spawn.ShooterID != shooterID || spawn.TargetID != targetID {
		t.Errorf("unexpected spawn event %+v", spawn)
	}
	if !utils.ApproxEqualVec3(spawn.SpawnPoint, mgl64.Vec3{0, 0.2, 0.5}, 1e-9) {
		t.Errorf("expected spawn point (0,0.2,0.5), got %v", spawn.SpawnPoint)
	}

	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, spawn.ProjectileID)
	if !ok {
		t.Fatal("spawned projectile should exist")
	}
	if !utils.ApproxEqualVec3(proj.Direction, mgl64.Vec3{2, -0.2, 0}, 1e-9) {
		t.Errorf("expected direction (2,-0.2,0), got %v", proj.Direction)
	}
	if proj.Speed != 3.0 {
		t.Errorf("expected speed 3.0, got %f", proj.Speed)
	}
	if proj.SourceID != shooterID {
		t.Errorf("expected source %d, got %d", shooterID, proj.SourceID)
	}

	scene, _ := ecs.GetComponent[*components.SceneComponent](em, spawn.ProjectileID)
	if scene == nil || scene.Handle != "scenes/bullet" {
		t.Errorf("scene handle should be passed through, got %+v", scene)
	}

	shooter, _ := ecs.GetComponent[*components.ShooterComponent](em, shooterID)
	if shooter.ShotsFired != 1 {
		t.Errorf("expected ShotsFired=1, got %d", shooter.ShotsFired)
	}
}

func TestShooterSystem_ChoosesNearestAmongMany(t *testing.T) {
	em := ecs.NewEntityManager()
	createTestShooter(t, em, mgl64.Vec3{}, 1.0)
	createTestTarget(t, em, mgl64.Vec3{-3, 0.4, 2.5})
	near := createTestTarget(t, em, mgl64.Vec3{1, 0.2, 0.5})
	createTestTarget(t, em, mgl64.Vec3{0, 0, 10})

	rec := &eventRecorder{}
	system := NewShooterSystem(em, rec.dispatcher(), testShooterSettings())
	system.Update(1.0)

	if len(rec.spawned) != 1 {
		t.Fatalf("expected 1 spawn, got %d", len(rec.spawned))
	}
	if rec.spawned[0].TargetID != near {
		t.Errorf("expected target %d, got %d", near, rec.spawned[0].TargetID)
	}
}

func TestShooterSystem_NoTargetsSkips(t *testing.T) {
	em := ecs.NewEntityManager()
	createTestShooter(t, em, mgl64.Vec3{}, 1.0)

	rec := &eventRecorder{}
	system := NewShooterSystem(em, rec.dispatcher(), testShooterSettings())

	for i := 0; i < 10; i++ {
		system.Update(0.5)
	}

	if got := len(ecs.GetEntitiesWith1[*components.ProjectileComponent](em)); got != 0 {
		t.Errorf("expected 0 projectiles without targets, got %d", got)
	}
	if len(rec.skipped) != 5 {
		t.Errorf("expected 5 skipped shots, got %d", len(rec.skipped))
	}
}

func TestShooterSystem_FixedDirectionFallback(t *testing.T) {
	em := ecs.NewEntityManager()
	createTestShooter(t, em, mgl64.Vec3{}, 1.0)

	settings := testShooterSettings()
	settings.NoTargetPolicy = config.NoTargetFixedDirection
	settings.FixedDirection = mgl64.Vec3{0, 0, 1}

	rec := &eventRecorder{}
	system := NewShooterSystem(em, rec.dispatcher(), settings)
	system.Update(1.0)

	if len(rec.spawned) != 1 {
		t.Fatalf("expected 1 spawn with fixed direction, got %d", len(rec.spawned))
	}
	if rec.spawned[0].TargetID != 0 {
		t.Errorf("fixed-direction shot should have no target, got %d", rec.spawned[0].TargetID)
	}
	if rec.spawned[0].Direction != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("expected direction (0,0,1), got %v", rec.spawned[0].Direction)
	}
}

// TestShooterSystem_TargetAtSpawnPoint 目标与出生点重合：方向为零向量，视为无有效目标
func TestShooterSystem_TargetAtSpawnPoint(t *testing.T) {
	em := ecs.NewEntityManager()
	createTestShooter(t, em, mgl64.Vec3{}, 1.0)
	createTestTarget(t, em, mgl64.Vec3{0, 0.2, 0.5})

	rec := &eventRecorder{}
	system := NewShooterSystem(em, rec.dispatcher(), testShooterSettings())
	system.Update(1.0)

	if len(rec.spawned) != 0 {
		t.Errorf("expected no spawn for degenerate direction, got %d", len(rec.spawned))
	}
	if len(rec.skipped) != 1 {
		t.Errorf("expected 1 skipped shot, got %d", len(rec.skipped))
	}
}

func TestShooterSystem_OrientedSpawnOffset(t *testing.T) {
	em := ecs.NewEntityManager()
	shooterID := createTestShooter(t, em, mgl64.Vec3{1, 0, 0}, 1.0)
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, shooterID)
	transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0})
	createTestTarget(t, em, mgl64.Vec3{5, 0, 0})

	tests := []struct {
		name     string
		oriented bool
		want     mgl64.Vec3
	}{
		{"oriented", true, mgl64.Vec3{1.5, 0.2, 0}},
		{"world space", false, mgl64.Vec3{1, 0.2, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shooter, _ := ecs.GetComponent[*components.ShooterComponent](em, shooterID)
			shooter.Cooldown.Reset()

			settings := testShooterSettings()
			settings.OrientSpawnOffset = tt.oriented
			rec := &eventRecorder{}
			NewShooterSystem(em, rec.dispatcher(), settings).Update(1.0)

			if len(rec.spawned) != 1 {
				t.Fatalf("expected 1 spawn, got %d", len(rec.spawned))
			}
			if !utils.ApproxEqualVec3(rec.spawned[0].SpawnPoint, tt.want, 1e-9) {
				t.Errorf("expected spawn point %v, got %v", tt.want, rec.spawned[0].SpawnPoint)
			}
		})
	}
}

func TestShooterSystem_AttachToShooter(t *testing.T) {
	em := ecs.NewEntityManager()
	shooterID := createTestShooter(t, em, mgl64.Vec3{}, 1.0)
	createTestTarget(t, em, mgl64.Vec3{2, 0, 0.5})

	settings := testShooterSettings()
	settings.AttachToShooter = true

	rec := &eventRecorder{}
	NewShooterSystem(em, rec.dispatcher(), settings).Update(1.0)

	if len(rec.spawned) != 1 {
		t.Fatalf("expected 1 spawn, got %d", len(rec.spawned))
	}
	if parent, ok := em.Parent(rec.spawned[0].ProjectileID); !ok || parent != shooterID {
		t.Errorf("projectile should be child of shooter %d, got %d", shooterID, parent)
	}
}

func TestShooterSystem_IndependentCooldowns(t *testing.T) {
	em := ecs.NewEntityManager()
	fast := createTestShooter(t, em, mgl64.Vec3{}, 0.5)
	slow := createTestShooter(t, em, mgl64.Vec3{0, 0, 5}, 1.0)
	createTestTarget(t, em, mgl64.Vec3{2, 0, 0.5})

	system := NewShooterSystem(em, nil, testShooterSettings())
	for i := 0; i < 4; i++ {
		system.Update(0.5)
	}

	fastShooter, _ := ecs.GetComponent[*components.ShooterComponent](em, fast)
	slowShooter, _ := ecs.GetComponent[*components.ShooterComponent](em, slow)
	if fastShooter.ShotsFired != 4 {
		t.Errorf("fast shooter: expected 4 shots, got %d", fastShooter.ShotsFired)
	}
	if slowShooter.ShotsFired != 2 {
		t.Errorf("slow shooter: expected 2 shots, got %d", slowShooter.ShotsFired)
	}
}

// eventRecorder 收集系统发出的事件
type eventRecorder struct {
	spawned []event.ProjectileSpawnedData
	skipped []event.ShotSkippedData
	expired []event.EntityExpiredData
}

func (r *eventRecorder) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.ProjectileSpawnedData:
		r.spawned = append(r.spawned, data)
	case event.ShotSkippedData:
		r.skipped = append(r.skipped, data)
	case event.EntityExpiredData:
		r.expired = append(r.expired, data)
	}
}

func (r *eventRecorder) dispatcher() *event.Dispatcher {
	d := event.NewDispatcher()
	d.Subscribe(event.ProjectileSpawned, r)
	d.Subscribe(event.ShotSkipped, r)
	d.Subscribe(event.EntityExpired, r)
	return d
}
