package arena

// Snapshot is a read-only view of the run for the shell's HUD and overlays.
// It copies scalars only; the shell never reaches into live simulation state.
type Snapshot struct {
	Phase  Phase
	Paused bool

	HP, MaxHP         float64
	Energy, MaxEnergy float64
	Combo             int
	ChargeRatio       float64
	Charging          bool
	TimeSlowActive    bool
	LastStandReady    bool

	Wave        int
	Level       int
	Theme       string
	WaveTime    float64
	RunTime     float64
	EnemiesLeft int

	Score     int
	HighScore int
	Kills     int

	ContractName   string
	ContractDesc   string
	ContractStatus ContractStatus

	Daily     bool
	DailyDate string

	DeathCause   string
	MutatorNames []string

	// DamageTaken is the death-recap accumulator, keyed by archetype name.
	DamageTaken map[string]float64
}

// State returns the current snapshot.
func (g *Game) State() Snapshot {
	s := Snapshot{
		Phase:          g.phase,
		Paused:         g.Paused,
		HP:             g.Player.HP,
		MaxHP:          g.Player.MaxHP,
		Energy:         g.Player.Energy,
		MaxEnergy:      g.Player.MaxEnergy,
		Combo:          g.Player.Combo,
		Charging:       g.Player.HeavyCharging,
		TimeSlowActive: g.Player.TimeSlowActive,
		LastStandReady: g.LastStandAvailable,
		Wave:           g.Wave,
		Level:          g.Level.Index,
		Theme:          g.Level.Theme,
		WaveTime:       g.WaveTime,
		RunTime:        g.RunTime,
		EnemiesLeft:    len(g.Enemies),
		Score:          g.Score,
		HighScore:      g.HighScore,
		Kills:          g.Kills,
		ContractName:   g.Contract.Name,
		ContractDesc:   g.Contract.Desc,
		ContractStatus: g.ContractStatus,
		Daily:          g.Daily,
		DailyDate:      g.DailyDate,
		DeathCause:     g.DeathCause,
	}
	if g.Player.HeavyCharging {
		s.ChargeRatio = g.Player.ChargeTime / heavyMaxCharge
		if s.ChargeRatio > 1 {
			s.ChargeRatio = 1
		}
	}
	for _, m := range g.activeMutators {
		s.MutatorNames = append(s.MutatorNames, m.Name)
	}
	if len(g.DamageByType) > 0 {
		s.DamageTaken = make(map[string]float64, len(g.DamageByType))
		for typ, dmg := range g.DamageByType {
			s.DamageTaken[typ.String()] = dmg
		}
	}
	return s
}
