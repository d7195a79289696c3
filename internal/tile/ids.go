package tile

// Base ids. Ranges are contiguous; a "Last" constant is inclusive.
const (
	Dirt           = 0
	River          = 2
	REdge          = 3
	Channel        = 4
	FirstRiverEdge = 5
	LastRiverEdge  = 20
	TreeBase       = 21
	LastTree       = 36
	Woods          = 37
	Woods2         = 40
	Woods3         = 41
	Woods4         = 42
	Woods5         = 43
	Rubble         = 44
	LastRubble     = 47
	Flood          = 48
	LastFlood      = 51
	RadTile        = 52
	Fire           = 56
	FireBase       = 56
	LastFire       = 63

	RoadBase     = 64
	HBridge      = 64
	VBridge      = 65
	Roads        = 66
	Roads2       = 67
	Intersection = 76
	HRoadPower   = 77
	VRoadPower   = 78
	BRWH         = 79
	LTrfBase     = 80
	BRWV         = 95
	HTrfBase     = 144
	LastRoad     = 206

	PowerBase   = 208
	HPower      = 208
	VPower      = 209
	LHPower     = 210
	LVPower     = 211
	RailHPowerV = 221
	RailVPowerH = 222
	LastPower   = 222

	RailBase  = 224
	HRail     = 224
	VRail     = 225
	LHRail    = 226
	LVRail    = 227
	HRailRoad = 237
	VRailRoad = 238
	LastRail  = 238

	ResBase  = 240
	FreeZ    = 244
	House    = 249
	LHThr    = 249
	HHThr    = 260
	RZB      = 265
	Hospital = 409
	Church   = 418

	ComBase = 423
	ComClr  = 427
	CZB     = 436

	IndBase = 612
	IndClr  = 616
	LastInd = 620
	Ind1    = 621
	IZB     = 625
	Ind2    = 641
	Ind3    = 644
	Ind4    = 649
	Ind5    = 650
	Ind6    = 676
	Ind7    = 677
	Ind8    = 686
	Ind9    = 689

	PortBase = 693
	Port     = 698
	LastPort = 708

	AirportBase = 709
	Radar       = 711
	Airport     = 716

	CoalBase       = 745
	PowerPlant     = 750
	LastPowerPlant = 760

	FireStBase    = 761
	FireStation   = 765
	PoliceStBase  = 770
	PoliceStation = 774

	StadiumBase = 779
	Stadium     = 784
	FullStadium = 800

	NuclearBase = 811
	Nuclear     = 816
	LastZone    = 826

	LightningBolt = 827
	HBrdg0        = 828
	HBrdg1        = 829
	HBrdg2        = 830
	HBrdg3        = 831
	Radar0        = 832
	Fountain      = 840
	TeleBase      = 844
	TeleLast      = 851
	SmokeBase     = 852
	IndSmoke      = 884
	TinyExp       = 860
	SomeTinyExp   = 864
	LastTinyExp   = 867
	CoalSmoke1    = 916
	CoalSmoke2    = 920
	CoalSmoke3    = 924
	CoalSmoke4    = 928
	FootballGame1 = 932
	FootballGame2 = 940
	VBrdg0        = 948
	VBrdg1        = 949
	VBrdg2        = 950
	VBrdg3        = 951

	TileCount = 960
)
