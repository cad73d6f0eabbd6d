package adapters

import (
	"github.com/de-tools/risk-flags/pkg/models/api"
	"github.com/de-tools/risk-flags/pkg/models/domain"
)

func MapFlagsDomainToApi(flags map[string]domain.Flag) api.Flags {
	out := make(api.Flags, len(flags))
	for name, f := range flags {
		out[name] = api.FlagValue(f)
	}
	return out
}

func MapFlagsApiToDomain(flags api.Flags) map[string]domain.Flag {
	out := make(map[string]domain.Flag, len(flags))
	for name, f := range flags {
		out[name] = domain.Flag(f)
	}
	return out
}

func MapFiguresDomainToApi(f domain.Figures) api.Figures {
	return api.Figures{
		TotalRevenue:   f.TotalRevenue,
		TotalBorrowing: f.TotalBorrowing,
		ISCR:           f.ISCR,
		ISCRComplete:   f.ISCRComplete,
		BorrowingRatio: f.BorrowingRatio,
		HasRevenue:     f.HasRevenueFigure,
	}
}

func MapIndicatorDomainToApi(ind domain.Indicator) api.Indicator {
	return api.Indicator{
		Name:        ind.Name,
		Title:       ind.Title,
		Flag:        api.FlagValue(ind.Flag),
		Label:       ind.Flag.String(),
		Value:       ind.Value,
		Threshold:   ind.Threshold,
		Description: ind.Description,
		Note:        ind.Note,
	}
}

func MapEvaluationDomainToApi(e domain.Evaluation) api.Evaluation {
	indicators := make([]api.Indicator, 0, len(e.Indicators))
	for _, ind := range e.Indicators {
		indicators = append(indicators, MapIndicatorDomainToApi(ind))
	}

	return api.Evaluation{
		StatementIndex: e.StatementIndex,
		Nature:         e.Nature,
		Flags:          MapFlagsDomainToApi(e.FlagMap()),
		Figures:        MapFiguresDomainToApi(e.Figures),
		Indicators:     indicators,
	}
}

func MapFlagLegend() []api.FlagLegend {
	legend := make([]api.FlagLegend, 0, len(domain.Flags()))
	for _, f := range domain.Flags() {
		legend = append(legend, api.FlagLegend{
			Value:       api.FlagValue(f),
			Label:       f.String(),
			Description: f.Description(),
		})
	}
	return legend
}
