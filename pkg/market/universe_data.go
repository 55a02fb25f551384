// Index constituents and sector assignments.

package market

// sp500Symbols lists S&P 500 constituents (507).
var sp500Symbols = []string{
	"A", "AAL", "AAPL", "ABBV", "ABNB", "ABT", "ACGL", "ACN", "ADBE", "ADI",
	"ADM", "ADP", "ADSK", "AEE", "AEP", "AES", "AFL", "AIG", "AIZ", "AJG",
	"AKAM", "ALB", "ALGN", "ALL", "ALLE", "AMAT", "AMCR", "AMD", "AME", "AMGN",
	"AMP", "AMT", "AMZN", "ANET", "ANSS", "AON", "AOS", "APA", "APD", "APH",
	"APTV", "ARE", "ATO", "ATVI", "AVB", "AVGO", "AVY", "AWK", "AXON", "AXP",
	"AZO", "BA", "BAC", "BALL", "BAX", "BBWI", "BBY", "BDX", "BEN", "BF-B",
	"BIIB", "BIO", "BK", "BKNG", "BKR", "BLDR", "BLK", "BMY", "BR", "BRK-B",
	"BRO", "BSX", "BWA", "BX", "BXP", "C", "CAG", "CAH", "CARR", "CAT",
	"CB", "CBOE", "CBRE", "CCI", "CCL", "CDAY", "CDNS", "CDW", "CE", "CEG",
	"CF", "CFG", "CHD", "CHRW", "CHTR", "CI", "CINF", "CL", "CLX", "CMA",
	"CMCSA", "CME", "CMG", "CMI", "CMS", "CNC", "CNP", "COF", "COO", "COP",
	"COR", "COST", "COTY", "CPB", "CPRT", "CPT", "CRL", "CRM", "CSCO", "CSGP",
	"CSX", "CTAS", "CTLT", "CTRA", "CTSH", "CTVA", "CVS", "CVX", "CZR", "D",
	"DAL", "DAY", "DD", "DE", "DFS", "DG", "DGX", "DHI", "DHR", "DIS",
	"DLR", "DLTR", "DOV", "DOW", "DPZ", "DRI", "DTE", "DUK", "DVA", "DVN",
	"DXCM", "EA", "EBAY", "ECL", "ED", "EFX", "EG", "EIX", "EL", "ELV",
	"EMN", "EMR", "ENPH", "EOG", "EPAM", "EQIX", "EQR", "EQT", "ES", "ESS",
	"ETN", "ETR", "ETSY", "EVRG", "EW", "EXC", "EXPD", "EXPE", "EXR", "F",
	"FANG", "FAST", "FCX", "FDS", "FDX", "FE", "FFIV", "FIS", "FISV", "FITB",
	"FMC", "FOX", "FOXA", "FRT", "FSLR", "FTNT", "FTV", "FUBO", "GD", "GE",
	"GEHC", "GEN", "GFS", "GILD", "GIS", "GL", "GLW", "GM", "GNRC", "GOOG",
	"GOOGL", "GPC", "GPN", "GRMN", "GS", "GWW", "HAL", "HAS", "HBAN", "HCA",
	"HD", "HES", "HIG", "HII", "HLT", "HOLX", "HON", "HPE", "HPQ", "HRL",
	"HSIC", "HST", "HSY", "HUBB", "HUM", "HWM", "IBM", "ICE", "IDXX", "IEX",
	"IFF", "INCY", "INTC", "INTU", "INVH", "IP", "IPG", "IQV", "IR", "IRM",
	"ISRG", "IT", "ITW", "IVZ", "J", "JBHT", "JCI", "JKHY", "JNJ", "JNPR",
	"JPM", "K", "KDP", "KEX", "KEY", "KEYS", "KHC", "KIM", "KLAC", "KMB",
	"KMI", "KMX", "KO", "KR", "KVUE", "L", "LDOS", "LEG", "LEN", "LH",
	"LHX", "LIN", "LKQ", "LLY", "LMT", "LNC", "LNT", "LOW", "LRCX", "LULU",
	"LUV", "LVS", "LW", "LYB", "LYV", "MA", "MAA", "MAR", "MAS", "MCD",
	"MCHP", "MCK", "MCO", "MDLZ", "MDT", "MET", "META", "MGM", "MHK", "MKC",
	"MKTX", "MLM", "MMC", "MMM", "MNST", "MO", "MOH", "MOS", "MPC", "MPWR",
	"MRK", "MRNA", "MRO", "MS", "MSCI", "MSFT", "MSI", "MTB", "MTCH", "MTD",
	"MU", "NCLH", "NDAQ", "NDSN", "NEE", "NEM", "NFLX", "NI", "NKE", "NOC",
	"NOW", "NRG", "NSC", "NTAP", "NTRS", "NUE", "NVDA", "NVR", "NWS", "NWSA",
	"NXPI", "O", "ODFL", "OKE", "OMC", "ON", "ORCL", "ORLY", "OTIS", "OXY",
	"PANW", "PARA", "PAYC", "PAYX", "PCAR", "PCG", "PEAK", "PEG", "PEP", "PFE",
	"PFG", "PG", "PGR", "PH", "PHM", "PKG", "PLD", "PM", "PNC", "PNR",
	"PNW", "POOL", "PPG", "PPL", "PRU", "PSA", "PSX", "PTC", "PWR", "PXD",
	"PYPL", "QCOM", "QRVO", "RCL", "RE", "REG", "REGN", "RF", "RHI", "RJF",
	"RL", "RMD", "ROK", "ROL", "ROP", "ROST", "RSG", "RTX", "RVTY", "SBAC",
	"SBUX", "SCHW", "SHW", "SJM", "SLB", "SNA", "SNPS", "SO", "SOLV", "SPG",
	"SPGI", "SRE", "STE", "STLD", "STT", "STX", "STZ", "SWK", "SWKS", "SYF",
	"SYK", "SYY", "T", "TAP", "TDG", "TDY", "TECH", "TEL", "TER", "TFC",
	"TFX", "TGT", "TJX", "TMO", "TMUS", "TPG", "TPR", "TRGP", "TRMB", "TROW",
	"TRV", "TSCO", "TSLA", "TSN", "TT", "TTWO", "TXN", "TXT", "TYL", "UAL",
	"UDR", "UHS", "ULTA", "UNH", "UNP", "UPS", "URI", "USB", "V", "VICI",
	"VLO", "VLTO", "VMC", "VRSK", "VRSN", "VRTX", "VST", "VTR", "VTRS", "VZ",
	"WAB", "WAT", "WBA", "WBD", "WDC", "WEC", "WELL", "WFC", "WHR", "WM",
	"WMB", "WMT", "WRB", "WRK", "WST", "WTW", "WY", "WYNN", "XEL", "XOM",
	"XRAY", "XYL", "YUM", "ZBH", "ZBRA", "ZION", "ZTS",
}

// nasdaq100Symbols lists NASDAQ 100 constituents (100).
var nasdaq100Symbols = []string{
	"NVDA", "MSFT", "AAPL", "AMZN", "GOOG", "GOOGL", "META", "AVGO", "TSLA", "NFLX",
	"COST", "ASML", "PLTR", "TMUS", "CSCO", "AZN", "LIN", "INTU", "AMD", "ISRG",
	"TXN", "PEP", "BKNG", "ADBE", "QCOM", "AMGN", "ARM", "PDD", "HON", "SHOP",
	"AMAT", "PANW", "GILD", "VRTX", "SBUX", "ADP", "MDLZ", "ADI", "LRCX", "REGN",
	"PYPL", "SNPS", "KLAC", "CDNS", "MAR", "CSX", "ORLY", "FTNT", "DASH", "TTD",
	"PCAR", "NXPI", "ROP", "ABNB", "ROST", "PAYX", "FAST", "BKR", "EA", "VRSK",
	"EXC", "TEAM", "ODFL", "AEP", "XEL", "CTSH", "KDP", "GEHC", "CCEP", "ON",
	"DDOG", "KHC", "IDXX", "ZS", "ANSS", "TTWO", "CSGP", "WBD", "GFS", "MDB",
	"ILMN", "BIIB", "ZM", "LCID", "RIVN", "MRNA", "CRWD", "COIN", "RBLX", "DOCU",
	"ROKU", "PTON", "ZG", "OKTA", "DXCM", "ALGN", "INCY", "SIRI", "BMRN", "TECH",
}

// daxSymbols lists DAX constituents on XETRA (40).
var daxSymbols = []string{
	"SAP.DE", "SIE.DE", "ALV.DE", "BAS.DE", "BMW.DE", "DAI.DE", "DBK.DE", "DTE.DE", "EON.DE", "FRE.DE",
	"HEI.DE", "HEN3.DE", "IFX.DE", "LIN.DE", "MRK.DE", "MTX.DE", "MUV2.DE", "RWE.DE", "VNA.DE", "VOW3.DE",
	"ZAL.DE", "ADS.DE", "CON.DE", "EOAN.DE", "FME.DE", "PAH3.DE", "SHL.DE", "SY1.DE", "QIA.DE", "HNR1.DE",
	"BNR.DE", "EVK.DE", "SZG.DE", "TEG.DE", "HDD.DE", "SRT.DE", "WCH.DE", "BEI.DE", "DHER.DE", "PUM.DE",
}

// usSectors assigns GICS-style sectors to the largest US listings.
var usSectors = SectorMap{
	// Technology
	"AAPL":  SectorTechnology,
	"MSFT":  SectorTechnology,
	"GOOGL": SectorTechnology,
	"GOOG":  SectorTechnology,
	"META":  SectorTechnology,
	"NVDA":  SectorTechnology,
	"AVGO":  SectorTechnology,
	"ADBE":  SectorTechnology,
	"CRM":   SectorTechnology,
	"ORCL":  SectorTechnology,
	"INTC":  SectorTechnology,
	"IBM":   SectorTechnology,
	"ACN":   SectorTechnology,
	"TXN":   SectorTechnology,
	"QCOM":  SectorTechnology,
	"AMD":   SectorTechnology,
	"NOW":   SectorTechnology,
	"INTU":  SectorTechnology,
	"AMAT":  SectorTechnology,
	"ADI":   SectorTechnology,
	"LRCX":  SectorTechnology,
	"KLAC":  SectorTechnology,
	"SNPS":  SectorTechnology,
	"CDNS":  SectorTechnology,

	// Consumer Discretionary
	"AMZN": SectorConsumerDiscretionary,
	"TSLA": SectorConsumerDiscretionary,
	"HD":   SectorConsumerDiscretionary,
	"NKE":  SectorConsumerDiscretionary,
	"LOW":  SectorConsumerDiscretionary,
	"TJX":  SectorConsumerDiscretionary,
	"BKNG": SectorConsumerDiscretionary,
	"MCD":  SectorConsumerDiscretionary,
	"SBUX": SectorConsumerDiscretionary,

	// Health Care
	"UNH":  SectorHealthCare,
	"JNJ":  SectorHealthCare,
	"LLY":  SectorHealthCare,
	"ABBV": SectorHealthCare,
	"PFE":  SectorHealthCare,
	"TMO":  SectorHealthCare,
	"ABT":  SectorHealthCare,
	"MRK":  SectorHealthCare,
	"BMY":  SectorHealthCare,
	"MDT":  SectorHealthCare,
	"GILD": SectorHealthCare,
	"ISRG": SectorHealthCare,
	"REGN": SectorHealthCare,
	"VRTX": SectorHealthCare,
	"AMGN": SectorHealthCare,
	"ZTS":  SectorHealthCare,
	"CI":   SectorHealthCare,
	"CVS":  SectorHealthCare,
	"BSX":  SectorHealthCare,
	"HUM":  SectorHealthCare,

	// Financials
	"BRK-B": SectorFinancials,
	"JPM":   SectorFinancials,
	"V":     SectorFinancials,
	"MA":    SectorFinancials,
	"GS":    SectorFinancials,
	"AXP":   SectorFinancials,
	"MS":    SectorFinancials,
	"BLK":   SectorFinancials,
	"SCHW":  SectorFinancials,
	"SPGI":  SectorFinancials,
	"CME":   SectorFinancials,
	"ICE":   SectorFinancials,
	"MCO":   SectorFinancials,
	"USB":   SectorFinancials,
	"TFC":   SectorFinancials,
	"COF":   SectorFinancials,

	// Consumer Staples
	"PG":   SectorConsumerStaples,
	"KO":   SectorConsumerStaples,
	"PEP":  SectorConsumerStaples,
	"COST": SectorConsumerStaples,
	"WMT":  SectorConsumerStaples,
	"MDLZ": SectorConsumerStaples,
	"CL":   SectorConsumerStaples,
	"KMB":  SectorConsumerStaples,
	"KR":   SectorConsumerStaples,
	"PM":   SectorConsumerStaples,
	"MO":   SectorConsumerStaples,

	// Communication Services
	"DIS":   SectorCommunicationServices,
	"VZ":    SectorCommunicationServices,
	"NFLX":  SectorCommunicationServices,
	"CMCSA": SectorCommunicationServices,
	"T":     SectorCommunicationServices,
	"TMUS":  SectorCommunicationServices,
	"CHTR":  SectorCommunicationServices,

	// Energy
	"CVX": SectorEnergy,
	"XOM": SectorEnergy,
	"COP": SectorEnergy,
	"SLB": SectorEnergy,
	"EOG": SectorEnergy,

	// Industrials
	"HON":  SectorIndustrials,
	"UPS":  SectorIndustrials,
	"CAT":  SectorIndustrials,
	"RTX":  SectorIndustrials,
	"LMT":  SectorIndustrials,
	"BA":   SectorIndustrials,
	"GE":   SectorIndustrials,
	"MMM":  SectorIndustrials,
	"DE":   SectorIndustrials,
	"UNP":  SectorIndustrials,
	"NSC":  SectorIndustrials,
	"FDX":  SectorIndustrials,
	"EMR":  SectorIndustrials,
	"ITW":  SectorIndustrials,
	"CARR": SectorIndustrials,
	"JCI":  SectorIndustrials,

	// Utilities
	"NEE": SectorUtilities,
	"SO":  SectorUtilities,
	"DUK": SectorUtilities,
	"EXC": SectorUtilities,
	"AEP": SectorUtilities,
	"XEL": SectorUtilities,
	"WEC": SectorUtilities,
	"ES":  SectorUtilities,

	// Real Estate
	"PLD":  SectorRealEstate,
	"EQIX": SectorRealEstate,
	"PSA":  SectorRealEstate,
	"CCI":  SectorRealEstate,

	// Materials
	"LIN": SectorMaterials,
	"APD": SectorMaterials,
	"SHW": SectorMaterials,
	"NUE": SectorMaterials,
	"ECL": SectorMaterials,
	"PPG": SectorMaterials,
}

// daxSectors assigns sectors to DAX members.
var daxSectors = SectorMap{
	// Technology
	"SAP.DE": SectorTechnology,
	"SIE.DE": SectorTechnology,
	"IFX.DE": SectorTechnology,

	// Automotive
	"BMW.DE":  SectorAutomotive,
	"DAI.DE":  SectorAutomotive,
	"VOW3.DE": SectorAutomotive,
	"CON.DE":  SectorAutomotive,

	// Financials
	"ALV.DE":  SectorFinancials,
	"DBK.DE":  SectorFinancials,
	"MUV2.DE": SectorFinancials,
	"HNR1.DE": SectorFinancials,

	// Chemicals
	"BAS.DE": SectorChemicals,
	"LIN.DE": SectorChemicals,
	"WCH.DE": SectorChemicals,
	"SY1.DE": SectorChemicals,
	"BNR.DE": SectorChemicals,
	"EVK.DE": SectorChemicals,

	// Health Care
	"FRE.DE": SectorHealthCare,
	"MRK.DE": SectorHealthCare,
	"BEI.DE": SectorHealthCare,
	"SHL.DE": SectorHealthCare,
	"QIA.DE": SectorHealthCare,
	"SRT.DE": SectorHealthCare,

	// Utilities
	"EON.DE":  SectorUtilities,
	"RWE.DE":  SectorUtilities,
	"EOAN.DE": SectorUtilities,

	// Telecommunications
	"DTE.DE": SectorTelecommunications,
	"VNA.DE": SectorTelecommunications,

	// Industrials
	"HEI.DE":  SectorIndustrials,
	"MTX.DE":  SectorIndustrials,
	"DHER.DE": SectorIndustrials,

	// Consumer Discretionary
	"ZAL.DE": SectorConsumerDiscretionary,
	"ADS.DE": SectorConsumerDiscretionary,
	"PUM.DE": SectorConsumerDiscretionary,

	// Consumer Staples
	"HEN3.DE": SectorConsumerStaples,
	"FME.DE":  SectorConsumerStaples,

	// Real Estate
	"PAH3.DE": SectorRealEstate,
	"TEG.DE":  SectorRealEstate,
	"HDD.DE":  SectorRealEstate,

	// Materials
	"SZG.DE": SectorMaterials,
}
