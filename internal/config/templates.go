// =============================================================================
// Excel to DTE Converter - Canonical Templates and Type Map
// =============================================================================
//
// This file holds the compiled-in DTE rule set: the document-type templates
// (fixed fields overlaid onto every record), the canonical type map, the
// standard field transform rules, and the built-in tenants. Tenant YAML files
// override any part of this per tenant; what is not overridden falls back to
// the values below.
//
// FIELD NAMES:
//   The canonical spelling is used throughout: DescuentoExento and
//   OtrosDocumentosRelacionados. Variant spellings that circulated in older
//   tenant sheets are treated as typos and mapped via rename tables, never
//   reproduced in output.
//
// =============================================================================

package config

// DocumentTypes enumerates the supported document-type codes and their
// human-readable names.
var DocumentTypes = map[string]string{
	DocTypeFactura:        "Factura",
	DocTypeCreditoFiscal:  "Comprobante de Crédito Fiscal",
	DocTypeNotaCredito:    "Nota de Crédito",
	DocTypeExportacion:    "Factura de Exportación",
	DocTypeSujetoExcluido: "Factura de Sujeto Excluido",
	DocTypeInvalidacion:   "Invalidación",
}

// Document-type codes as they appear in the Ministerio de Hacienda catalog,
// plus the internal "cancel" code for invalidation batches.
const (
	DocTypeFactura        = "01"
	DocTypeCreditoFiscal  = "03"
	DocTypeNotaCredito    = "05"
	DocTypeExportacion    = "11"
	DocTypeSujetoExcluido = "14"
	DocTypeInvalidacion   = "cancel"
)

// SectionDetalles and SectionDocumentosRelacionados are the two sections that
// always stay lists in the output regardless of entry count.
const (
	SectionDetalles               = "Detalles"
	SectionDocumentosRelacionados = "DocumentosRelacionados"
	SectionOtrosDocumentos        = "OtrosDocumentosRelacionados"
	SectionApendices              = "Apendices"
	SectionReceptor               = "Receptor"
	SectionResumen                = "Resumen"
	SectionExtension              = "Extension"
	SectionIdentificacion         = "Identificacion"
)

// =============================================================================
// CANONICAL TEMPLATES
// =============================================================================

// canonicalTemplates maps document-type code -> template. The invalidation
// type maps to nil: cancellation batches carry no fixed fields and skip the
// overlay entirely.
var canonicalTemplates = map[string]*Template{
	DocTypeFactura:        facturaTemplate,
	DocTypeCreditoFiscal:  creditoFiscalTemplate,
	DocTypeNotaCredito:    notaCreditoTemplate,
	DocTypeExportacion:    exportacionTemplate,
	DocTypeSujetoExcluido: sujetoExcluidoTemplate,
	DocTypeInvalidacion:   nil,
}

var facturaTemplate = &Template{
	Root: map[string]any{
		"CodigoGeneracionContingencia": nil,
		"NumeroIntentos":               0,
		"VentaTercero":                 false,
		"NitTercero":                   nil,
		"NombreTercero":                nil,
	},
	Sections: map[string]SectionDefault{
		SectionIdentificacion: ObjectDefault(map[string]any{
			"TipoDte": DocTypeFactura,
		}),
		SectionReceptor: ObjectDefault(map[string]any{
			"Nrc": nil,
		}),
		SectionDetalles: ObjectDefault(map[string]any{
			"Descuento":            0,
			"Codigo":               nil,
			"CodGenDocRelacionado": nil,
			"CodigoTributo":        nil,
		}),
		SectionResumen: ObjectDefault(map[string]any{
			"DescuentoNoSujeto": 0,
			"DescuentoGravado":  0,
			"DescuentoExento":   0,
			"RetencionRenta":    false,
		}),
		SectionDocumentosRelacionados: ListDefault(),
		SectionOtrosDocumentos:        ListDefault(),
		SectionApendices:              ListDefault(),
	},
}

var creditoFiscalTemplate = &Template{
	Root: map[string]any{
		"CodigoGeneracionContingencia": nil,
		"NumeroIntentos":               0,
		"VentaTercero":                 false,
		"NitTercero":                   nil,
		"NombreTercero":                nil,
		"Rechazado":                    false,
	},
	Sections: map[string]SectionDefault{
		SectionIdentificacion: ObjectDefault(map[string]any{
			"TipoDte": DocTypeCreditoFiscal,
		}),
		SectionResumen: ObjectDefault(map[string]any{
			"DescuentoNoSujeto": 0,
			"DescuentoGravado":  0,
			"DescuentoExento":   0,
			"RetencionRenta":    false,
		}),
		SectionDocumentosRelacionados: ListDefault(),
		SectionOtrosDocumentos:        ListDefault(),
		SectionApendices:              ListDefault(),
	},
}

var notaCreditoTemplate = &Template{
	Root: map[string]any{
		"CodigoGeneracionContingencia": nil,
		"NumeroIntentos":               0,
		"VentaTercero":                 false,
		"NitTercero":                   nil,
		"NombreTercero":                nil,
	},
	Sections: map[string]SectionDefault{
		SectionIdentificacion: ObjectDefault(map[string]any{
			"TipoDte": DocTypeNotaCredito,
		}),
		SectionResumen: ObjectDefault(map[string]any{
			"DescuentoNoSujeto": 0,
			"DescuentoGravado":  0,
			"DescuentoExento":   0,
			"RetencionRenta":    false,
		}),
		SectionApendices: ListDefault(),
	},
}

var exportacionTemplate = &Template{
	Root: map[string]any{
		"CodigoGeneracionContingencia": nil,
		"NumeroIntentos":               0,
		"VentaTercero":                 false,
		"NitTercero":                   nil,
		"NombreTercero":                nil,
	},
	Sections: map[string]SectionDefault{
		SectionIdentificacion: ObjectDefault(map[string]any{
			"TipoDte": DocTypeExportacion,
		}),
		SectionResumen: ObjectDefault(map[string]any{
			"Seguro":              0.0,
			"Flete":               0.0,
			"CodigoIncoterm":      nil,
			"DescripcionIncoterm": nil,
			"Observaciones":       nil,
		}),
		SectionOtrosDocumentos: ListDefault(),
		SectionApendices:       ListDefault(),
	},
}

var sujetoExcluidoTemplate = &Template{
	Root: map[string]any{
		"CodigoGeneracionContingencia": nil,
		"NumeroIntentos":               0,
		"Rechazado":                    false,
		"Observaciones":                "",
	},
	Sections: map[string]SectionDefault{
		SectionIdentificacion: ObjectDefault(map[string]any{
			"TipoDte": DocTypeSujetoExcluido,
		}),
		SectionApendices: ListDefault(),
	},
}

// =============================================================================
// CANONICAL TYPE MAP
// =============================================================================

// CanonicalTypeMap returns a fresh copy of the canonical section/field type
// declarations. The "dte" key types the header sheet (whose columns land at
// the record root); the remaining keys type the section sheets.
func CanonicalTypeMap() map[string]map[string]FieldType {
	return map[string]map[string]FieldType{
		"dte": {
			"CodigoGeneracionContingencia": TypeText,
			"NumeroIntentos":               TypeInteger,
			"VentaTercero":                 TypeBoolean,
			"NitTercero":                   TypeText,
			"NombreTercero":                TypeText,
			"CodigoCondicionOperacion":     TypeText,
			"Rechazado":                    TypeBoolean,
			"TipoInvalidacion":             TypeText,
			"CodigoEstablecimientoMH":      TypeText,
			"MotivoInvalidacion":           TypeText,
		},
		SectionIdentificacion: {
			"TipoDte":                 TypeText,
			"CodigoEstablecimientoMH": TypeText,
			"Moneda":                  TypeText,
		},
		SectionReceptor: {
			"TipoDocumentoIdentificacion":   TypeText,
			"NumeroDocumentoIdentificacion": TypeText,
			"CodigoDepartamento":            TypeText,
			"CodigoMunicipio":               TypeText,
			"Direccion":                     TypeText,
			"Nrc":                           TypeText,
			"CodigoActividadEconomica":      TypeText,
			"DescripcionActividadEconomica": TypeText,
			"Correo":                        TypeText,
			"Telefono":                      TypeText,
			"Nit":                           TypeText,
			"Nombres":                       TypeText,
			"CodigoTipoPersona":             TypeInteger,
			"DireccionComplemento":          TypeText,
			"CodigoPais":                    TypeText,
			"NombrePais":                    TypeText,
		},
		SectionDetalles: {
			"TipoMonto":            TypeInteger,
			"CodigoTipoItem":       TypeInteger,
			"Cantidad":             TypeFloat,
			"Codigo":               TypeText,
			"CodGenDocRelacionado": TypeText,
			"CodigoTributo":        TypeText,
			"CodigoUnidadMedida":   TypeText,
			"Descripcion":          TypeText,
			"Tributos":             TypeText,
			"PrecioUnitario":       TypeFloat,
			"IvaItem":              TypeFloat,
			"Descuento":            TypeFloat,
			"Subtotal":             TypeFloat,
		},
		SectionResumen: {
			"DescuentoNoSujeto":       TypeFloat,
			"DescuentoGravado":        TypeFloat,
			"DescuentoExento":         TypeFloat,
			"RetencionRenta":          TypeBoolean,
			"CodigoRetencionIva":      TypeText,
			"PercepcionIva":           TypeBoolean,
			"Seguro":                  TypeFloat,
			"Flete":                   TypeFloat,
			"CodigoIncoterm":          TypeText,
			"DescripcionIncoterm":     TypeText,
			"Observaciones":           TypeText,
			"TipoDocIdentResponsable": TypeText,
			"NumDocIdentResponsable":  TypeText,
			"NombresResponsable":      TypeText,
			"TipoDocIdentSolicita":    TypeText,
			"NumDocIdentSolicita":     TypeText,
			"NombresSolicita":         TypeText,
		},
		SectionExtension: {
			"NombreEntrega":    TypeText,
			"DocumentoEntrega": TypeText,
			"NombreRecibe":     TypeText,
			"DocumentoRecibe":  TypeText,
			"Observaciones":    TypeText,
			"PlacaVehiculo":    TypeText,
		},
		SectionDocumentosRelacionados: {
			"TipoDte":              TypeText,
			"CodigoGeneracion":     TypeText,
			"CodigoTipoGeneracion": TypeInteger,
			"FechaEmision":         TypeText,
		},
		"Detalle": {
			"TipoDte":                            TypeText,
			"CodigoGeneracion":                   TypeText,
			"CodigoGeneracionDocumentoReemplazo": TypeText,
			"TipoDteReemplazo":                   TypeText,
			"NombreCliente":                      TypeText,
			"CorreoCliente":                      TypeText,
			"TelefonoCliente":                    TypeText,
		},
	}
}

// =============================================================================
// STANDARD TRANSFORM RULES
// =============================================================================

// duiPassportCodes are the identification-document type codes whose numbers
// carry formatting hyphens that the receiving system rejects.
var duiPassportCodes = []string{"13", "36"}

// DefaultTransformRules returns the standard row transform rule table.
// The "*" key applies to every section sheet; named keys scope a rule to one
// section.
func DefaultTransformRules() map[string][]FieldRule {
	return map[string][]FieldRule{
		"*": {
			{Field: "Tributos", Action: ActionSplitList, Delimiter: ","},
			{Field: "Nrc", Action: ActionStripHyphens},
			{Field: "Nit", Action: ActionStripHyphens},
			{
				Field:      "NumeroDocumentoIdentificacion",
				Action:     ActionStripHyphensWhen,
				WhenField:  "TipoDocumentoIdentificacion",
				WhenValues: duiPassportCodes,
			},
		},
		SectionResumen: {
			{
				Field:      "NumDocIdentResponsable",
				Action:     ActionStripHyphensWhen,
				WhenField:  "TipoDocIdentResponsable",
				WhenValues: duiPassportCodes,
			},
			{
				Field:      "NumDocIdentSolicita",
				Action:     ActionStripHyphensWhen,
				WhenField:  "TipoDocIdentSolicita",
				WhenValues: duiPassportCodes,
			},
		},
		SectionExtension: {
			{Field: "DocumentoEntrega", Action: ActionStripHyphens},
			{Field: "DocumentoRecibe", Action: ActionStripHyphens},
		},
	}
}

// =============================================================================
// BUILT-IN TENANTS
// =============================================================================

// BuiltinTenants returns the compiled-in tenant set. The default tenant
// carries the full canonical rule set; the named tenants exist for the two
// clients whose historical numeric identifiers are kept as aliases.
func BuiltinTenants() map[string]*TenantConfig {
	defaultTenant := &TenantConfig{
		Code: DefaultTenantCode,
		Name: "Canonical DTE rule set",
	}
	ApplyTenantDefaults(defaultTenant)

	ra := &TenantConfig{
		Code: "ra",
		Name: "Red Abierta",
	}
	ApplyTenantDefaults(ra)

	px := &TenantConfig{
		Code:             "px",
		Name:             "Proxessa",
		NormalizeHeaders: true,
	}
	ApplyTenantDefaults(px)

	return map[string]*TenantConfig{
		DefaultTenantCode: defaultTenant,
		"ra":              ra,
		"2":               ra, // historical numeric client id
		"px":              px,
		"26":              px, // historical numeric client id
	}
}
