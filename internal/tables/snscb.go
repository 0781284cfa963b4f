package tables

// LFCB and HFCB are the stage-1 SNS codebooks: 32 envelope shapes for the
// low and high halves of the 16-dimensional scale factor vector.
var LFCB = [32][8]float64{
	{-2.5627710, -2.0632410, -1.7063194, -0.9990933, -0.6386934, -0.4709557, -0.1939668, -0.1144261},
	{-1.1317203, -0.8121081, -0.5064385, -0.2502948, -0.6677578, -0.8718842, -1.7873943, -2.4547501},
	{-0.8651187, -0.8040199, -0.9720718, -0.9283365, -0.9034256, -1.1195160, -1.4220090, -1.4321631},
	{-3.4281600, -2.6980183, -2.2191368, -1.5500325, -0.6156115, 0.2001022, 0.7588104, 1.3847222},
	{-0.1554667, -0.6929968, -1.2685454, -1.5912209, -1.3595587, -1.0504667, -0.9788144, -1.0572942},
	{-1.0355123, -1.2711392, -1.3865173, -1.6190998, -1.2855144, -0.8086898, -0.2148757, 0.1246527},
	{-1.9554819, -1.7717609, -0.7769082, -0.2351804, -0.1215433, -0.2605265, -0.7120670, -1.4495590},
	{-2.4804116, -1.8434827, -1.4287043, -1.1541468, -0.4696991, 0.0931471, 0.2408551, 0.2150034},
	{-2.5622649, -2.2464734, -2.0364181, -1.4765497, -0.9219406, 0.0227386, 0.7895109, 1.7412406},
	{-1.7512748, -1.6591236, -1.4645924, -1.2704782, -0.4735312, 0.0756000, 0.7942398, 1.5425177},
	{-0.9886758, -0.7968241, -0.7942376, -0.3490858, 0.0597698, -0.0382623, -0.5213765, -0.6469068},
	{-0.6092885, -0.7661079, -1.0286039, -0.9634900, -1.0650489, -0.3062137, 0.2579022, 0.8244570},
	{-2.0543165, -1.5058261, -1.1898289, -0.3159236, -0.1175780, 0.4382691, 1.0026253, 1.2507182},
	{-0.4953696, -0.8798046, -0.9615854, -0.9172784, -0.3473648, -0.0657872, 0.4401957, 0.8871653},
	{-1.8816007, -1.6403944, -1.4159826, -0.8409203, -0.5525524, 0.7004103, 1.6275932, 2.4914206},
	{-1.9824012, -1.0542829, -0.3351954, 0.1735104, 0.6923651, 0.6415702, 0.3716347, 0.2936661},
	{-0.5416768, -0.2276910, -0.1027088, -0.1945525, -0.2373234, -0.1535429, -0.0784985, 0.4286492},
	{1.6777512, 1.1306550, 0.1465366, -0.5698975, -0.9746814, -0.7814147, -0.3487562, -0.3622517},
	{-0.7996532, -0.7275057, -0.4236763, 0.0118654, 0.2635696, 0.6240529, 1.1914694, 1.4770718},
	{2.4773932, 1.9881233, 1.2252952, 0.6145526, -0.0284991, -0.8653697, -1.4542894, -1.8283896},
	{0.7271973, 0.9520670, 1.0150450, 0.8308021, 0.6975250, -0.0557253, -0.8688722, -0.9641280},
	{-1.0679405, -0.6599859, 0.0275283, 0.6005631, 1.0934781, 1.0419592, 0.9040144, 0.7125112},
	{2.3101313, 2.0304925, 1.3533464, 0.9257176, 0.0183293, -0.5902099, -1.0705528, -1.6393026},
	{1.3445835, 0.8658170, 0.5366341, 0.3238991, 0.3814835, 0.1725373, -0.1009574, -0.0812725},
	{-0.7035769, -0.3353393, 0.2570519, 0.7984673, 1.0975354, 0.9567803, 0.8824173, 0.8310188},
	{-0.7102082, -0.6681173, -0.5350681, -0.2775381, 0.5518673, 1.1550525, 1.9539098, 2.7686678},
	{-0.2377404, 0.1907423, 0.9671412, 1.4176803, 1.5650412, 1.1352347, 0.8656438, 0.6797521},
	{-0.5315652, -0.5004976, -0.4161159, -0.2423031, 0.5758693, 1.5619444, 2.7159388, 3.5718940},
	{2.0520290, 2.0656446, 1.7799880, 1.6975515, 1.2493586, 0.2154219, -0.5966794, -0.9392202},
	{-1.3184545, -0.7310324, 0.1698683, 0.9066193, 1.5987001, 2.1033523, 2.5685203, 2.6385597},
	{-0.4331341, 0.3659186, 1.3690688, 1.7775241, 1.6167586, 1.5208971, 0.9228287, 0.8672641},
	{-0.3694305, 0.2260255, 0.8982323, 1.6717381, 2.0056946, 1.7526246, 1.3115336, 0.7810350},
}

var HFCB = [32][8]float64{
	{-2.3856752, -2.1453358, -1.4738460, -1.0158014, -0.5788202, -0.2621677, -0.6131900, -0.8143663},
	{-3.5113453, -3.1144485, -2.4244214, -1.4679115, -0.7921261, 0.2106180, 0.7810095, 1.4150099},
	{-2.6447532, -2.2440541, -2.2935590, -1.7880920, -1.0652720, -0.2719688, 0.6925462, 1.7355932},
	{-0.0618036, -0.3080456, -1.0373256, -1.3704364, -1.8107928, -1.6985105, -1.0572639, -0.4682761},
	{-0.9615601, -0.8710569, -0.9874454, -1.1387373, -1.0540376, -0.8912190, -0.8522244, -0.6858016},
	{-2.2862727, -2.1210678, -1.6879293, -1.3305089, -0.9805068, -0.2824354, 0.7611756, 1.2690515},
	{-3.4155898, -2.7761451, -1.7939822, -0.8349892, 0.1497400, 0.4022871, 0.6852401, 1.0854429},
	{-0.2139125, -0.6919512, -0.8983292, -1.3797811, -1.3114145, -1.0117983, -0.5103513, -0.3348535},
	{-1.9394559, -2.0617541, -1.9120919, -1.7291096, -1.0235340, -0.1185788, 1.0849704, 1.7804196},
	{-0.5545465, -0.6657171, -0.9409774, -0.8703187, -0.7578451, -0.5911695, -0.4556874, -0.5644377},
	{-1.5920107, -1.5473390, -1.2889515, -1.2098892, -0.6674730, -0.0945323, 0.6036116, 0.8311648},
	{-1.9853870, -1.6848163, -1.3914651, -1.0139334, -0.7026554, -0.0348966, 0.7393810, 1.3560151},
	{-0.2130409, -0.1609178, -0.2169247, -0.3994629, -0.3781425, -0.6696800, -0.8784139, -1.2416520},
	{-2.4282313, -2.1392971, -1.3528853, -0.8294992, -0.1620885, 0.4634389, 0.9934976, 1.5981883},
	{0.0241423, -0.0635014, -0.3224228, 0.0293849, -0.4677187, -0.7056810, -1.2045646, -1.0366395},
	{1.1627122, 0.5842947, 0.2390316, -0.2165212, -0.8643567, -0.9122399, -1.4370623, -1.4960998},
	{2.5721800, 1.6970808, 0.6260567, -0.6328192, -1.3066668, -1.7393381, -1.8947060, -2.2137670},
	{-1.9040424, -1.5086107, -1.1635234, -0.6002390, -0.0205305, 0.4044393, 0.8581885, 1.4993345},
	{-1.3698084, -0.8294270, -0.3721037, 0.0759655, 0.4791724, 0.3902501, 0.2434745, 0.0666505},
	{0.3242121, 0.1505534, 0.4032697, 0.2500419, 0.1982919, -0.3922211, -0.7635758, -1.4583368},
	{-2.0198533, -1.4203670, -0.7381963, 0.2214124, 0.6211564, 0.9087978, 0.8392183, 0.8793054},
	{-2.5027146, -1.9409423, -1.3087442, -0.5892570, 0.3266900, 1.0627079, 1.8238705, 2.4733227},
	{-0.0590176, -0.2283620, -0.0197121, -0.0023243, -0.0897657, -0.0924225, -0.2076098, 0.1844859},
	{-0.6309947, -0.5436047, -0.3186957, -0.2309357, -0.0247076, 0.1954658, 0.6968095, 1.0144658},
	{-1.4321381, -1.0914325, -0.4561843, -0.2639968, 0.3221254, 0.7870457, 1.2399701, 1.3859753},
	{1.8816317, 1.7262665, 0.9379613, 0.7157433, 0.0934862, -0.0899800, -0.6217989, -1.1058485},
	{-0.8643835, -0.5743458, 0.1859391, 0.7107263, 1.1243278, 1.0573219, 1.2013805, 0.8077495},
	{0.2490912, 0.2548930, -0.2490478, -0.1519164, -0.0464891, 0.3405898, 1.2715659, 2.0363853},
	{-0.7699097, -0.3421767, -0.5756934, -0.0067342, 0.7059860, 1.0594343, 1.7926034, 2.3573460},
	{1.2642163, 1.2670241, 1.6203018, 1.6519322, 1.4750774, 0.6367820, 0.0058277, -0.6374877},
	{0.3449841, 0.9214466, 1.4140223, 1.9730693, 1.5873983, 1.1774309, 0.4020564, -0.2412695},
	{-0.1878152, -0.0784625, 0.0540121, 0.3247708, 1.1745220, 1.7521591, 2.8315505, 3.2474822},
}

// Stage-2 gain codebooks, one family per shape. GainMSBBits and GainLSBBits
// give the bit split of the gain index in the side information.
var (
	GainsReg   = [2]float64{1.0000000, 1.5998535}
	GainsRegLF = [4]float64{0.7999268, 1.1999512, 1.8999023, 2.9998779}
	GainsNear  = [4]float64{0.9000244, 1.2999268, 1.8999023, 2.7998047}
	GainsFar   = [8]float64{0.6999512, 0.9998779, 1.3499756, 1.7999268, 2.3999023, 3.1998291, 4.1997070, 5.5996094}
)

var (
	GainMSBBits = [4]int{1, 1, 2, 2}
	GainLSBBits = [4]int{0, 1, 0, 1}
)
