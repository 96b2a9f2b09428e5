package consts

// Graph node names. The conditional logic returns these exact strings,
// so they double as branch targets in the compose graph.
const (
	// Analyst team
	MarketAnalyst       = "Market Analyst"
	SocialAnalyst       = "Social Analyst"
	NewsAnalyst         = "News Analyst"
	FundamentalsAnalyst = "Fundamentals Analyst"

	// Tool-execution nodes, one per tool-using role
	ToolsMarket       = "tools_market"
	ToolsSocial       = "tools_social"
	ToolsNews         = "tools_news"
	ToolsFundamentals = "tools_fundamentals"
	ToolsRiskJudge    = "tools_Risk Judge"

	// Message-clear nodes that close each tool loop
	MsgClearMarket       = "Msg Clear Market"
	MsgClearSocial       = "Msg Clear Social"
	MsgClearNews         = "Msg Clear News"
	MsgClearFundamentals = "Msg Clear Fundamentals"
	MsgClearRiskJudge    = "Msg Clear Risk Judge"

	// Research team
	BullResearcher        = "Bull Researcher"
	BearResearcher        = "Bear Researcher"
	BullCrossexResearcher = "Bull Crossex Researcher"
	BearCrossexResearcher = "Bear Crossex Researcher"
	ResearchManager       = "Research Manager"

	// Trading team
	Trader = "Trader"

	// Risk management team
	RiskyAnalyst   = "Risky Analyst"
	SafeAnalyst    = "Safe Analyst"
	NeutralAnalyst = "Neutral Analyst"
	RiskJudge      = "Risk Judge"

	// Portfolio management
	PortfolioOptimizer            = "Portfolio Optimizer"
	MultiTickerPortfolioOptimizer = "Multi-Ticker Portfolio Optimizer"

	// Terminal sentinel
	End = "END"
)

// Ticker-iteration outcomes for portfolio runs.
const (
	ContinueAnalysis      = "continue_analysis"
	NextTicker            = "next_ticker"
	PortfolioOptimization = "portfolio_optimization"
)

// Role keys for tool loops and per-ticker completion maps.
const (
	RoleMarket       = "market"
	RoleSocial       = "social"
	RoleNews         = "news"
	RoleFundamentals = "fundamentals"

	RoleBull        = "bull"
	RoleBear        = "bear"
	RoleBullCrossex = "bull_crossex"
	RoleBearCrossex = "bear_crossex"

	RoleAggressive   = "aggressive"
	RoleConservative = "conservative"
	RoleNeutral      = "neutral"
)

// AnalystRoles lists the tool-using analyst roles in pipeline order.
var AnalystRoles = []string{RoleMarket, RoleSocial, RoleNews, RoleFundamentals}

// ResearcherRoles lists the debate participants in speaking order.
var ResearcherRoles = []string{RoleBull, RoleBear, RoleBullCrossex, RoleBearCrossex}

// RiskRoles lists the risk debators in speaking order.
var RiskRoles = []string{RoleAggressive, RoleConservative, RoleNeutral}
