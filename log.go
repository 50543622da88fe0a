package stockroom

import "github.com/rs/zerolog"

func loadComponentIntoArrayLogger(c Component, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(c.ID()))
	dictLogger = dictLogger.Str("component_name", c.Name())
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsIntoArrayLogger(components []Component) *zerolog.Array {
	arrayLogger := zerolog.Arr()
	for _, c := range components {
		arrayLogger = loadComponentIntoArrayLogger(c, arrayLogger)
	}
	return arrayLogger
}

func loadArchetypeIntoEvent(event *zerolog.Event, a Archetype) *zerolog.Event {
	event.Int("archetype_id", int(a.ID()))
	event.Int("total_entities", a.Len())
	return event.Array("components", loadComponentsIntoArrayLogger(a.Components()))
}

// LogArchetypes logs every archetype of r, with its components and population,
// as a single event.
func LogArchetypes(r Registry, level zerolog.Level) {
	reg := r.(*registry)
	event := reg.logger.WithLevel(level)
	archetypesLogger := zerolog.Arr()
	for _, a := range reg.archetypes.asSlice {
		archetypesLogger = archetypesLogger.Dict(loadArchetypeIntoEvent(zerolog.Dict(), a))
	}
	event.Int("total_archetypes", reg.archetypes.len())
	event.Int("total_entities", reg.Len())
	event.Array("archetypes", archetypesLogger).Send()
}

// LogEntity logs the archetype and components of e.
func LogEntity(r Registry, level zerolog.Level, e Entity) {
	reg := r.(*registry)
	arch, _, err := reg.locate(e)
	if err != nil {
		reg.logger.Err(err).Msgf("failed to log entity %v", e)
		return
	}
	event := reg.logger.WithLevel(level)
	event.Uint32("entity_id", e.ID)
	event.Uint32("entity_generation", e.Generation)
	loadArchetypeIntoEvent(event, arch).Send()
}

// LogSystems logs the registered system names in update order.
func LogSystems(r Registry, level zerolog.Level) {
	reg := r.(*registry)
	event := reg.logger.WithLevel(level)
	systemsLogger := zerolog.Arr()
	for _, name := range reg.systemNames {
		systemsLogger = systemsLogger.Str(name)
	}
	event.Int("total_systems", len(reg.systemNames))
	event.Array("systems", systemsLogger).Send()
}
